package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a WGS84 coordinate in GeoJSON order.
type Point struct {
	Longitude float64
	Latitude  float64
}

// Valid reports whether the point lies within geographic bounds.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Longitude) && !math.IsNaN(p.Latitude) &&
		p.Longitude >= -180 && p.Longitude <= 180 &&
		p.Latitude >= -90 && p.Latitude <= 90
}

// RawRecord is one feature as returned by the upstream feature service.
// It is immutable once fetched.
type RawRecord struct {
	// Collection is the collection the feature was fetched from.
	Collection CollectionType

	// FeatureID is the GeoJSON feature id (number or string), nil if absent.
	FeatureID any

	// Geometry is the feature's point geometry, nil if absent.
	Geometry *Point

	// Properties is the upstream property bag with collection-specific names.
	Properties map[string]any
}

// PrimaryID returns the record's stable identifier: the feature id, falling
// back to an "id" property. It returns false when neither is usable.
func (r RawRecord) PrimaryID() (string, bool) {
	if id, ok := FormatScalar(r.FeatureID); ok {
		return id, true
	}
	return FormatScalar(r.Properties["id"])
}

// Identifier is a typed identifier entry on a catalog item.
type Identifier struct {
	Type   string `json:"type"`
	Scheme string `json:"scheme"`
	Key    string `json:"key"`
}

// Identifier schemes written to the catalog.
const (
	IdentifierTypeUniqueKey = "uniqueKey"

	// SchemeDatabaseID is the reconciliation key scheme.
	SchemeDatabaseID    = "CRC Well Catalog Database ID"
	SchemeLibraryNumber = "CRC Library Number"
	SchemeAPINumber     = "American Petroleum Institute Number"
)

// Contact is a party associated with a catalog item.
type Contact struct {
	Name        string
	Type        string
	ContactType string
	OldPartyID  int
}

// Contact roles.
const (
	ContactRoleSiteOperator = "Site Operator"
	ContactRoleDataOwner    = "Data Owner"
	ContactRoleDataSteward  = "Data Steward"

	ContactTypeOrganization = "organization"
	ContactTypePerson       = "person"
)

// Tag is a free-text facet value.
type Tag struct {
	Type   string
	Scheme string
	Name   string
}

// Tag schemes produced by geologic enrichment.
const (
	TagTypeTheme         = "Theme"
	TagSchemeRockType    = "Rock Type"
	TagSchemeGeologicAge = "Geologic Age"
	TagSchemeFormation   = "Geologic Formation"
	MaxTagNameLength     = 80
)

// NewTag builds a theme tag, truncating the name to MaxTagNameLength runes.
func NewTag(scheme, name string) Tag {
	r := []rune(strings.TrimSpace(name))
	if len(r) > MaxTagNameLength {
		r = r[:MaxTagNameLength]
	}
	return Tag{Type: TagTypeTheme, Scheme: scheme, Name: string(r)}
}

// WebLink is a link attached to a catalog item.
type WebLink struct {
	Type              string
	TypeLabel         string
	URI               string
	Rel               string
	Title             string
	Hidden            bool
	ItemWebLinkTypeID string
}

// Web link type ids used by the catalog.
const (
	WebLinkTypeIDWebLink  = "4f4e475de4b07f02db47debf"
	WebLinkTypeIDDownload = "4f4e475de4b07f02db47dec0"
)

// Record is the normalised form of a RawRecord.
//
// ID is stable across runs and is the sole reconciliation key. Properties
// holds the raw property bag verbatim and is never modified after mapping;
// enrichment may only append Tags and WebLinks and set Geology and Detail.
type Record struct {
	ID          string
	Collection  CollectionType
	Title       string
	Summary     string
	Identifiers []Identifier
	Contacts    []Contact
	Tags        []Tag
	WebLinks    []WebLink
	Location    *Point
	Properties  map[string]any

	// Enrichment payloads, nil when the source produced nothing.
	Geology *GeologicContext
	Detail  *DetailPage
}

// AddTags appends tags, skipping exact duplicates already on the record.
func (r *Record) AddTags(tags ...Tag) {
	for _, t := range tags {
		if t.Name == "" || r.hasTag(t) {
			continue
		}
		r.Tags = append(r.Tags, t)
	}
}

func (r *Record) hasTag(t Tag) bool {
	for _, existing := range r.Tags {
		if existing == t {
			return true
		}
	}
	return false
}

// AddWebLinks appends links, skipping URIs already on the record.
func (r *Record) AddWebLinks(links ...WebLink) {
	for _, l := range links {
		if l.URI == "" || r.hasLink(l.URI) {
			continue
		}
		r.WebLinks = append(r.WebLinks, l)
	}
}

func (r *Record) hasLink(uri string) bool {
	for _, existing := range r.WebLinks {
		if existing.URI == uri {
			return true
		}
	}
	return false
}

// IdentifierKey returns the key of the first identifier with the given scheme.
func (r *Record) IdentifierKey(scheme string) (string, bool) {
	for _, id := range r.Identifiers {
		if id.Scheme == scheme {
			return id.Key, true
		}
	}
	return "", false
}

// FormatScalar renders a scalar property value as an identifier or title
// fragment. It returns false for nil, blank strings and non-scalar values.
func FormatScalar(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10), true
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return FormatScalar(float64(val))
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	case fmt.Stringer:
		s := strings.TrimSpace(val.String())
		return s, s != ""
	default:
		return "", false
	}
}
