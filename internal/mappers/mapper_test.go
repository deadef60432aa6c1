package mappers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

const testBaseURL = "https://crc.example"

func TestCoreMapper_FullRecord(t *testing.T) {
	m := NewCore(testBaseURL)
	raw := domain.RawRecord{
		Collection: domain.CollectionCore,
		FeatureID:  float64(1201),
		Geometry:   &domain.Point{Longitude: -104.9, Latitude: 40.1},
		Properties: map[string]any{
			"libno":  "C1234",
			"oper":   "Acme Drilling Co.",
			"apiwel": "05-123-45678",
			"lat":    40.1,
			"lng":    -104.9,
		},
	}

	rec, err := m.Map(raw)
	require.NoError(t, err)

	assert.Equal(t, "1201", rec.ID)
	assert.Equal(t, domain.CollectionCore, rec.Collection)
	assert.Equal(t, "Core Research Center Core C1234 (Acme Drilling Co.)", rec.Title)
	assert.Equal(t, "Core Research Center, core C1234, from well operated by Acme Drilling Co.", rec.Summary)
	assert.Equal(t, []domain.Identifier{
		{Type: domain.IdentifierTypeUniqueKey, Scheme: domain.SchemeDatabaseID, Key: "1201"},
		{Type: domain.IdentifierTypeUniqueKey, Scheme: domain.SchemeLibraryNumber, Key: "C1234"},
		{Type: domain.IdentifierTypeUniqueKey, Scheme: domain.SchemeAPINumber, Key: "05-123-45678"},
	}, rec.Identifiers)
	require.Len(t, rec.Contacts, 1)
	assert.Equal(t, domain.Contact{
		Name:        "Acme Drilling Co.",
		Type:        domain.ContactRoleSiteOperator,
		ContactType: domain.ContactTypeOrganization,
	}, rec.Contacts[0])
	require.NotNil(t, rec.Location)
	assert.Equal(t, -104.9, rec.Location.Longitude)
	require.Len(t, rec.WebLinks, 1)
	assert.Equal(t, "https://crc.example/core/report/1201", rec.WebLinks[0].URI)
	assert.Equal(t, raw.Properties, rec.Properties)
	assert.Empty(t, rec.Tags)
}

// A record without supporting identifiers or operator gets a title derived
// from its primary identifier alone and no contact entry.
func TestCoreMapper_NullSupportingFields(t *testing.T) {
	m := NewCore(testBaseURL)

	rec, err := m.Map(domain.RawRecord{
		Collection: domain.CollectionCore,
		FeatureID:  "A2",
		Properties: map[string]any{"libno": nil, "oper": nil, "apiwel": nil},
	})
	require.NoError(t, err)

	assert.Equal(t, "Core Research Center Core A2", rec.Title)
	assert.Empty(t, rec.Contacts)
	require.Len(t, rec.Identifiers, 1)
	assert.Equal(t, domain.SchemeDatabaseID, rec.Identifiers[0].Scheme)
	assert.Nil(t, rec.Location)
	assert.Contains(t, rec.Properties, "oper")
	assert.Nil(t, rec.Properties["oper"])
}

func TestMapper_MissingPrimaryIdentifier(t *testing.T) {
	for _, m := range []*Mapper{NewCore(testBaseURL), NewCutting(testBaseURL)} {
		t.Run(string(m.Collection()), func(t *testing.T) {
			rec, err := m.Map(domain.RawRecord{
				FeatureID:  nil,
				Properties: map[string]any{"id": nil, "libno": "C1"},
			})

			assert.Nil(t, rec)
			assert.ErrorIs(t, err, domain.ErrMappingFailed)
		})
	}
}

func TestMapper_PropertyIDFallback(t *testing.T) {
	rec, err := NewCore(testBaseURL).Map(domain.RawRecord{
		Properties: map[string]any{"id": float64(88)},
	})
	require.NoError(t, err)
	assert.Equal(t, "88", rec.ID)
}

func TestCuttingMapper_UsesCuttingFieldTable(t *testing.T) {
	m := NewCutting(testBaseURL)

	rec, err := m.Map(domain.RawRecord{
		Collection: domain.CollectionCutting,
		FeatureID:  float64(9),
		Properties: map[string]any{
			"chlibno":  float64(4455),
			"operator": "  Sinclair   Oil ",
			"apinum":   nil,
			"libno":    "ignored",
			"lat":      39.5,
			"lng":      -106.0,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Core Research Center Cutting 4455 (  Sinclair   Oil )", rec.Title)
	lib, ok := rec.IdentifierKey(domain.SchemeLibraryNumber)
	assert.True(t, ok)
	assert.Equal(t, "4455", lib)
	_, ok = rec.IdentifierKey(domain.SchemeAPINumber)
	assert.False(t, ok)
	require.Len(t, rec.Contacts, 1)
	assert.Equal(t, "  Sinclair   Oil ", rec.Contacts[0].Name)
	require.NotNil(t, rec.Location)
	assert.Equal(t, 39.5, rec.Location.Latitude)
	assert.Equal(t, "https://crc.example/cutting/report/9", rec.WebLinks[0].URI)
}

func TestMapper_LocationRequiresNumericCoordinates(t *testing.T) {
	rec, err := NewCore(testBaseURL).Map(domain.RawRecord{
		FeatureID:  "1",
		Properties: map[string]any{"lat": "40.1", "lng": -104.9},
	})
	require.NoError(t, err)
	assert.Nil(t, rec.Location)
}

func TestMapper_BlankOperatorIsOmitted(t *testing.T) {
	rec, err := NewCore(testBaseURL).Map(domain.RawRecord{
		FeatureID:  "1",
		Properties: map[string]any{"oper": "   "},
	})
	require.NoError(t, err)
	assert.Empty(t, rec.Contacts)
	assert.Equal(t, "Core Research Center Core 1", rec.Title)
}

func TestMapper_PropertiesAreDeepCopied(t *testing.T) {
	nested := map[string]any{"depth": float64(100)}
	raw := domain.RawRecord{
		FeatureID:  "1",
		Properties: map[string]any{"extra": nested, "list": []any{"a"}},
	}

	rec, err := NewCore(testBaseURL).Map(raw)
	require.NoError(t, err)

	nested["depth"] = float64(200)
	raw.Properties["list"].([]any)[0] = "b"

	assert.Equal(t, float64(100), rec.Properties["extra"].(map[string]any)["depth"])
	assert.Equal(t, "a", rec.Properties["list"].([]any)[0])
}

func TestMapper_NilProperties(t *testing.T) {
	rec, err := NewCore(testBaseURL).Map(domain.RawRecord{FeatureID: "5"})
	require.NoError(t, err)
	assert.NotNil(t, rec.Properties)
	assert.Empty(t, rec.Properties)
}
