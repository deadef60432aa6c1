package domain

// GeologicContext holds the geologic map facts found at a record's location.
type GeologicContext struct {
	// Name is the mapped unit or formation name.
	Name string

	// Age is the unit's geologic age description.
	Age string

	// RockTypes lists the lithologies of the unit.
	RockTypes []string

	// Facts is the service's full response payload.
	Facts map[string]any
}

// Tags converts the context into catalog tags.
func (g *GeologicContext) Tags() []Tag {
	if g == nil {
		return nil
	}
	var tags []Tag
	for _, rt := range g.RockTypes {
		if rt != "" {
			tags = append(tags, NewTag(TagSchemeRockType, rt))
		}
	}
	if g.Age != "" {
		tags = append(tags, NewTag(TagSchemeGeologicAge, g.Age))
	}
	if g.Name != "" {
		tags = append(tags, NewTag(TagSchemeFormation, g.Name))
	}
	return tags
}

// DetailPage holds the sub-entities scraped from a record's detail web page.
type DetailPage struct {
	// Intervals are depth/age/formation rows.
	Intervals []map[string]string

	// ThinSections are thin-section inventory rows.
	ThinSections []map[string]string

	// Photos are links to core photographs.
	Photos []string

	// Documents are links to downloadable analysis files.
	Documents []string
}

// IsEmpty reports whether nothing was extracted from the page.
func (d *DetailPage) IsEmpty() bool {
	return d == nil ||
		len(d.Intervals) == 0 && len(d.ThinSections) == 0 &&
			len(d.Photos) == 0 && len(d.Documents) == 0
}
