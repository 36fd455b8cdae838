package models

import (
	"fmt"
	"strconv"
	"strings"
)

// SortOrder selects the ordering of note listings.
// Values match the stored sort preference (0 through 5).
type SortOrder int

const (
	SortModifiedDesc SortOrder = iota
	SortCreatedDesc
	SortContentAsc
	SortModifiedAsc
	SortCreatedAsc
	SortContentDesc
)

var sortOrderNames = map[SortOrder]string{
	SortModifiedDesc: "modified-desc",
	SortCreatedDesc:  "created-desc",
	SortContentAsc:   "content-asc",
	SortModifiedAsc:  "modified-asc",
	SortCreatedAsc:   "created-asc",
	SortContentDesc:  "content-desc",
}

func (s SortOrder) String() string {
	if name, ok := sortOrderNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SortOrder(%d)", int(s))
}

// Valid reports whether s is one of the recognized orders
func (s SortOrder) Valid() bool {
	_, ok := sortOrderNames[s]
	return ok
}

// ParseSortOrder accepts either the preference digit ("0".."5") or the
// order name ("modified-desc", ...). Empty input yields the default.
func ParseSortOrder(value string) (SortOrder, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return SortModifiedDesc, nil
	}

	if n, err := strconv.Atoi(value); err == nil {
		order := SortOrder(n)
		if !order.Valid() {
			return SortModifiedDesc, fmt.Errorf("unknown sort order %d", n)
		}
		return order, nil
	}

	for order, name := range sortOrderNames {
		if name == value {
			return order, nil
		}
	}
	return SortModifiedDesc, fmt.Errorf("unknown sort order %q", value)
}

// ListOptions controls note listing and search
type ListOptions struct {
	Sort           SortOrder
	IncludeDeleted bool
}
