package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// CollectionType identifies one of the CRC well catalog's sample collections.
// Each type has its own feature service layer and property schema.
type CollectionType string

// Known collection types.
const (
	// CollectionCore is the rock core collection (feature service layer 0).
	CollectionCore CollectionType = "core"

	// CollectionCutting is the drill cuttings collection (feature service layer 1).
	CollectionCutting CollectionType = "cutting"
)

// AllCollections returns every known collection type in harvest order.
func AllCollections() []CollectionType {
	return []CollectionType{CollectionCore, CollectionCutting}
}

// ParseCollectionType converts a user supplied name to a CollectionType.
func ParseCollectionType(s string) (CollectionType, error) {
	c := CollectionType(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: collection %q", ErrUnsupportedType, s)
	}
	return c, nil
}

// IsValid returns true if the collection type is recognised.
func (c CollectionType) IsValid() bool {
	switch c {
	case CollectionCore, CollectionCutting:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c CollectionType) String() string {
	return string(c)
}

// Label returns the capitalised name used in titles ("Core", "Cutting").
func (c CollectionType) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Collection pairs a source collection type with its destination.
type Collection struct {
	// Type is the source collection type.
	Type CollectionType

	// Layer is the feature service layer index.
	Layer int

	// ParentID is the destination catalog collection that receives the items.
	ParentID string
}

// DefaultCollections returns the production layer and destination mapping.
func DefaultCollections() map[CollectionType]Collection {
	return map[CollectionType]Collection{
		CollectionCore: {
			Type:     CollectionCore,
			Layer:    0,
			ParentID: "4f4e49dae4b07f02db5e0486",
		},
		CollectionCutting: {
			Type:     CollectionCutting,
			Layer:    1,
			ParentID: "4f4e49d8e4b07f02db5df2d2",
		},
	}
}

// DetailPageURL returns the CRC web report page for a record.
func DetailPageURL(baseURL string, ct CollectionType, id string) string {
	return strings.TrimRight(baseURL, "/") + "/" + string(ct) + "/report/" + url.PathEscape(id)
}
