package enums

import "fmt"

// SortKey names the orderings supported by the catalog pipeline.
type SortKey string

const (
	SortKeyPrice      SortKey = "price"
	SortKeyRating     SortKey = "rating"
	SortKeyPopularity SortKey = "popularity"
)

var validSortKeys = []SortKey{
	SortKeyPrice,
	SortKeyRating,
	SortKeyPopularity,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
