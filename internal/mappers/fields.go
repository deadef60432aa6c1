package mappers

// FieldTable names the collection-specific properties a mapper reads.
// The primary identifier is always the feature id.
type FieldTable struct {
	// LibraryNumber is the CRC library number property.
	LibraryNumber string

	// Operator is the well operator/company property.
	Operator string

	// APINumber is the American Petroleum Institute well number property.
	APINumber string

	// Latitude and Longitude are the fallback coordinate properties used
	// when the feature has no geometry.
	Latitude  string
	Longitude string
}

// CoreFields is the field table of the core collection.
var CoreFields = FieldTable{
	LibraryNumber: "libno",
	Operator:      "oper",
	APINumber:     "apiwel",
	Latitude:      "lat",
	Longitude:     "lng",
}

// CuttingFields is the field table of the cutting collection.
var CuttingFields = FieldTable{
	LibraryNumber: "chlibno",
	Operator:      "operator",
	APINumber:     "apinum",
	Latitude:      "lat",
	Longitude:     "lng",
}
