package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
		ok    bool
	}{
		{"nil", nil, "", false},
		{"blank string", "   ", "", false},
		{"string", " 05-123-45678 ", "05-123-45678", true},
		{"integral float", float64(1234), "1234", true},
		{"fractional float", 12.5, "12.5", true},
		{"int", 7, "7", true},
		{"json number", json.Number("99"), "99", true},
		{"map", map[string]any{"a": 1}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatScalar(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTag_Truncates(t *testing.T) {
	long := strings.Repeat("é", 100)

	tag := NewTag(TagSchemeFormation, long)

	assert.Equal(t, TagTypeTheme, tag.Type)
	assert.Equal(t, TagSchemeFormation, tag.Scheme)
	assert.Len(t, []rune(tag.Name), MaxTagNameLength)
}

func TestRecord_AddTagsAndLinksAreAdditive(t *testing.T) {
	r := &Record{
		ID:       "1",
		Tags:     []Tag{NewTag(TagSchemeRockType, "shale")},
		WebLinks: []WebLink{{URI: "https://example.test/a"}},
	}

	r.AddTags(NewTag(TagSchemeRockType, "shale"), NewTag(TagSchemeGeologicAge, "Cretaceous"), Tag{})
	r.AddWebLinks(WebLink{URI: "https://example.test/a"}, WebLink{URI: "https://example.test/b"}, WebLink{})

	assert.Len(t, r.Tags, 2)
	assert.Equal(t, "shale", r.Tags[0].Name)
	assert.Len(t, r.WebLinks, 2)
	assert.Equal(t, "https://example.test/a", r.WebLinks[0].URI)
}

func TestRecord_IdentifierKey(t *testing.T) {
	r := &Record{Identifiers: []Identifier{
		{Type: IdentifierTypeUniqueKey, Scheme: SchemeDatabaseID, Key: "77"},
		{Type: IdentifierTypeUniqueKey, Scheme: SchemeLibraryNumber, Key: "C123"},
	}}

	key, ok := r.IdentifierKey(SchemeLibraryNumber)
	assert.True(t, ok)
	assert.Equal(t, "C123", key)

	_, ok = r.IdentifierKey(SchemeAPINumber)
	assert.False(t, ok)
}

func TestGeologicContext_Tags(t *testing.T) {
	g := &GeologicContext{Name: "Niobrara Formation", Age: "Late Cretaceous", RockTypes: []string{"chalk", "", "shale"}}

	tags := g.Tags()

	assert.Equal(t, []Tag{
		NewTag(TagSchemeRockType, "chalk"),
		NewTag(TagSchemeRockType, "shale"),
		NewTag(TagSchemeGeologicAge, "Late Cretaceous"),
		NewTag(TagSchemeFormation, "Niobrara Formation"),
	}, tags)

	var nilCtx *GeologicContext
	assert.Nil(t, nilCtx.Tags())
}

func TestDetailPage_IsEmpty(t *testing.T) {
	var nilPage *DetailPage
	assert.True(t, nilPage.IsEmpty())
	assert.True(t, (&DetailPage{}).IsEmpty())
	assert.False(t, (&DetailPage{Photos: []string{"p.jpg"}}).IsEmpty())
}

func TestPoint_Valid(t *testing.T) {
	assert.True(t, Point{Longitude: -105.1, Latitude: 39.7}.Valid())
	assert.False(t, Point{Longitude: 200, Latitude: 0}.Valid())
	assert.False(t, Point{Longitude: 0, Latitude: -91}.Valid())
}

func TestRawRecord_PrimaryID(t *testing.T) {
	tests := []struct {
		name   string
		raw    RawRecord
		want   string
		wantOK bool
	}{
		{"numeric feature id", RawRecord{FeatureID: float64(1201)}, "1201", true},
		{"string feature id", RawRecord{FeatureID: "A2"}, "A2", true},
		{"property fallback", RawRecord{Properties: map[string]any{"id": float64(7)}}, "7", true},
		{"blank feature id falls back", RawRecord{FeatureID: " ", Properties: map[string]any{"id": "x"}}, "x", true},
		{"missing", RawRecord{Properties: map[string]any{"id": nil}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.raw.PrimaryID()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
