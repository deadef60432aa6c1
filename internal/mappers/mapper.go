package mappers

import (
	"fmt"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// Ensure Mapper implements the interface.
var _ driven.SchemaMapper = (*Mapper)(nil)

// Mapper converts raw records of one collection into normalised records.
type Mapper struct {
	collection    domain.CollectionType
	fields        FieldTable
	detailBaseURL string
}

// New creates a mapper for a collection with the given field table.
// detailBaseURL is the CRC web site root used for the detail page link.
func New(collection domain.CollectionType, fields FieldTable, detailBaseURL string) *Mapper {
	return &Mapper{
		collection:    collection,
		fields:        fields,
		detailBaseURL: detailBaseURL,
	}
}

// Collection returns the collection type this mapper handles.
func (m *Mapper) Collection() domain.CollectionType {
	return m.collection
}

// Map converts one raw record.
func (m *Mapper) Map(raw domain.RawRecord) (*domain.Record, error) {
	id, ok := raw.PrimaryID()
	if !ok {
		return nil, fmt.Errorf("%w: %s record has no primary identifier", domain.ErrMappingFailed, m.collection)
	}

	libno, hasLibno := domain.FormatScalar(raw.Properties[m.fields.LibraryNumber])
	operator, hasOperator := operatorName(raw.Properties[m.fields.Operator])

	rec := &domain.Record{
		ID:          id,
		Collection:  m.collection,
		Title:       m.title(id, libno, hasLibno, operator, hasOperator),
		Summary:     m.summary(id, libno, hasLibno, operator, hasOperator),
		Identifiers: m.identifiers(id, raw.Properties),
		Location:    m.location(raw),
		Properties:  cloneProperties(raw.Properties),
	}

	if hasOperator {
		rec.Contacts = []domain.Contact{{
			Name:        operator,
			Type:        domain.ContactRoleSiteOperator,
			ContactType: domain.ContactTypeOrganization,
		}}
	}

	rec.AddWebLinks(domain.WebLink{
		Type:              "webLink",
		TypeLabel:         "Web Link",
		URI:               domain.DetailPageURL(m.detailBaseURL, m.collection, id),
		Rel:               "related",
		Title:             "Core Research Center Well Catalog Web Page",
		ItemWebLinkTypeID: domain.WebLinkTypeIDWebLink,
	})

	return rec, nil
}

// title builds "Core Research Center <Kind> <libno|id>" with the operator
// appended in parentheses when known.
func (m *Mapper) title(id, libno string, hasLibno bool, operator string, hasOperator bool) string {
	key := id
	if hasLibno {
		key = libno
	}
	title := fmt.Sprintf("Core Research Center %s %s", m.collection.Label(), key)
	if hasOperator {
		title += " (" + operator + ")"
	}
	return title
}

func (m *Mapper) summary(id, libno string, hasLibno bool, operator string, hasOperator bool) string {
	key := id
	if hasLibno {
		key = libno
	}
	s := fmt.Sprintf("Core Research Center, %s %s", m.collection, key)
	if hasOperator {
		s += ", from well operated by " + operator
	}
	return s
}

func (m *Mapper) identifiers(id string, props map[string]any) []domain.Identifier {
	ids := []domain.Identifier{{
		Type:   domain.IdentifierTypeUniqueKey,
		Scheme: domain.SchemeDatabaseID,
		Key:    id,
	}}
	if v, ok := domain.FormatScalar(props[m.fields.LibraryNumber]); ok {
		ids = append(ids, domain.Identifier{Type: domain.IdentifierTypeUniqueKey, Scheme: domain.SchemeLibraryNumber, Key: v})
	}
	if v, ok := domain.FormatScalar(props[m.fields.APINumber]); ok {
		ids = append(ids, domain.Identifier{Type: domain.IdentifierTypeUniqueKey, Scheme: domain.SchemeAPINumber, Key: v})
	}
	return ids
}

// location prefers the feature geometry and falls back to numeric
// latitude/longitude properties.
func (m *Mapper) location(raw domain.RawRecord) *domain.Point {
	if raw.Geometry != nil && raw.Geometry.Valid() {
		p := *raw.Geometry
		return &p
	}
	lat, latOK := raw.Properties[m.fields.Latitude].(float64)
	lng, lngOK := raw.Properties[m.fields.Longitude].(float64)
	if !latOK || !lngOK {
		return nil
	}
	p := domain.Point{Longitude: lng, Latitude: lat}
	if !p.Valid() {
		return nil
	}
	return &p
}

// operatorName passes free-text operator names through unmodified.
// Only nil, non-string and blank values are dropped.
func operatorName(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	if _, nonBlank := domain.FormatScalar(s); !nonBlank {
		return "", false
	}
	return s, true
}

// cloneProperties deep copies a property bag so later changes to either
// side never leak into the other.
func cloneProperties(src map[string]any) map[string]any {
	if src == nil {
		return map[string]any{}
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneProperties(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
