package sciencebase

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// Item field values written on every harvested item.
const (
	ProvenanceAnnotation = "Harvested from ArcGIS Server and Core Research Center Web Site"
	BrowseCategory       = "Physical Item"

	// CRCPartyID is the catalog party id of the Core Research Center.
	CRCPartyID = 17172
)

// item is the catalog's item shape, limited to the fields written here.
type item struct {
	ID               string       `json:"id,omitempty"`
	ParentID         string       `json:"parentId"`
	Title            string       `json:"title"`
	Body             string       `json:"body"`
	Identifiers      []identifier `json:"identifiers"`
	Contacts         []contact    `json:"contacts,omitempty"`
	Tags             []tag        `json:"tags,omitempty"`
	WebLinks         []webLink    `json:"webLinks,omitempty"`
	Spatial          *spatial     `json:"spatial,omitempty"`
	Provenance       *provenance  `json:"provenance,omitempty"`
	BrowseCategories []string     `json:"browseCategories,omitempty"`
	Link             *link        `json:"link,omitempty"`
}

type identifier struct {
	Type   string `json:"type"`
	Scheme string `json:"scheme"`
	Key    string `json:"key"`
}

type contact struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	ContactType string `json:"contactType"`
	OldPartyID  int    `json:"oldPartyId,omitempty"`
}

type tag struct {
	Type   string `json:"type"`
	Scheme string `json:"scheme"`
	Name   string `json:"name"`
}

type webLink struct {
	Type              string `json:"type"`
	TypeLabel         string `json:"typeLabel"`
	URI               string `json:"uri"`
	Rel               string `json:"rel"`
	Title             string `json:"title"`
	Hidden            bool   `json:"hidden"`
	ItemWebLinkTypeID string `json:"itemWebLinkTypeId"`
}

// spatial holds a [longitude, latitude] point.
type spatial struct {
	RepresentationalPoint [2]float64 `json:"representationalPoint"`
}

type provenance struct {
	Annotation string `json:"annotation"`
}

type link struct {
	Rel string `json:"rel"`
	URL string `json:"url"`
}

// itemPage is one page of a GET /items listing.
type itemPage struct {
	Total    int    `json:"total"`
	Items    []item `json:"items"`
	NextLink *link  `json:"nextlink,omitempty"`
}

// OwnerContact returns the data owner contact added to every item.
// The Core Research Center keeps its catalog party id.
func OwnerContact(name string) domain.Contact {
	c := domain.Contact{
		Name:        name,
		Type:        domain.ContactRoleDataOwner,
		ContactType: domain.ContactTypeOrganization,
	}
	if name == "Core Research Center" {
		c.OldPartyID = CRCPartyID
	}
	return c
}

// StewardContact returns the data steward contact added after the owner.
func StewardContact(name string, partyID int) domain.Contact {
	return domain.Contact{
		Name:        name,
		Type:        domain.ContactRoleDataSteward,
		ContactType: domain.ContactTypePerson,
		OldPartyID:  partyID,
	}
}

// buildItem translates a normalised record into the catalog item shape.
// The fixed contacts come first, followed by the record's own.
func buildItem(parentID string, rec *domain.Record, fixed []domain.Contact) (*item, error) {
	body, err := buildBody(rec)
	if err != nil {
		return nil, err
	}

	it := &item{
		ParentID:         parentID,
		Title:            rec.Title,
		Body:             body,
		Provenance:       &provenance{Annotation: ProvenanceAnnotation},
		BrowseCategories: []string{BrowseCategory},
	}

	for _, id := range rec.Identifiers {
		it.Identifiers = append(it.Identifiers, identifier(id))
	}
	for _, c := range fixed {
		if c.Name != "" {
			it.Contacts = append(it.Contacts, toContact(c))
		}
	}
	for _, c := range rec.Contacts {
		it.Contacts = append(it.Contacts, toContact(c))
	}
	for _, t := range rec.Tags {
		it.Tags = append(it.Tags, tag(t))
	}
	for _, l := range rec.WebLinks {
		it.WebLinks = append(it.WebLinks, webLink(l))
	}
	if rec.Location != nil {
		it.Spatial = &spatial{RepresentationalPoint: [2]float64{rec.Location.Longitude, rec.Location.Latitude}}
	}

	return it, nil
}

func toContact(c domain.Contact) contact {
	return contact{
		Name:        c.Name,
		Type:        c.Type,
		ContactType: c.ContactType,
		OldPartyID:  c.OldPartyID,
	}
}

// buildBody renders the item's HTML body. The raw property bag is embedded
// as JSON so every upstream field survives the harvest.
func buildBody(rec *domain.Record) (string, error) {
	var b strings.Builder

	b.WriteString("<p>")
	b.WriteString(html.EscapeString(rec.Summary))
	b.WriteString("</p>")

	if err := writeSection(&b, "Properties from ArcGIS MapServer", rec.Properties); err != nil {
		return "", err
	}

	if props := detailProperties(rec.Detail); len(props) > 0 {
		if err := writeSection(&b, "Properties from Web Page", props); err != nil {
			return "", err
		}
	}

	if rec.Geology != nil && len(rec.Geology.Facts) > 0 {
		if err := writeSection(&b, "Geologic Map Information from Macrostrat", rec.Geology.Facts); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

// writeSection appends a heading and a JSON block. json.Marshal escapes
// <, > and & so the block is safe inside the HTML body.
func writeSection(b *strings.Builder, heading string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.WriteString("<h4>")
	b.WriteString(heading)
	b.WriteString("</h4><div>")
	b.Write(data)
	b.WriteString("</div>")
	return nil
}

// detailProperties lists the tabular data scraped from the detail page.
func detailProperties(d *domain.DetailPage) map[string]any {
	if d == nil {
		return nil
	}
	props := map[string]any{}
	if len(d.Intervals) > 0 {
		props["depth_age_formation"] = d.Intervals
	}
	if len(d.ThinSections) > 0 {
		props["thin_sections"] = d.ThinSections
	}
	return props
}

// catalogItem converts a listed item for the reconciliation index.
func (it item) catalogItem() driven.CatalogItem {
	out := driven.CatalogItem{ID: it.ID, Title: it.Title}
	for _, id := range it.Identifiers {
		out.Identifiers = append(out.Identifiers, domain.Identifier(id))
	}
	return out
}
