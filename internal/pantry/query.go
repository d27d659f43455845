package pantry

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Any matches every category or location in a Filter.
const Any = "all"

// Filter selects items; all active conditions must hold.
type Filter struct {
	Category     Category // "" or Any for every category
	Location     Location // "" or Any for every location
	ExpiringSoon bool
	Expired      bool
}

func (f Filter) Match(it Item, today Date) bool {
	if f.Category != "" && f.Category != Any && it.Category != f.Category {
		return false
	}
	if f.Location != "" && f.Location != Any && it.Location != f.Location {
		return false
	}
	if f.ExpiringSoon && !IsExpiringSoon(it.Expiration, today) {
		return false
	}
	if f.Expired && !IsExpired(it.Expiration, today) {
		return false
	}
	return true
}

// FilterItems returns the matching items in their original order.
func FilterItems(items []Item, f Filter, today Date) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Match(it, today) {
			out = append(out, it)
		}
	}
	return out
}

type SortKey string

const (
	SortNameAsc        SortKey = "name-asc"
	SortNameDesc       SortKey = "name-desc"
	SortExpirationAsc  SortKey = "expiration-asc"
	SortExpirationDesc SortKey = "expiration-desc"
	SortCategory       SortKey = "category"
	SortLocation       SortKey = "location"
	SortAddedDesc      SortKey = "added-desc"
)

var SortKeys = []SortKey{SortNameAsc, SortNameDesc, SortExpirationAsc, SortExpirationDesc, SortCategory, SortLocation, SortAddedDesc}

func ParseSortKey(input string) (SortKey, error) {
	k := SortKey(strings.TrimSpace(strings.ToLower(input)))
	for _, known := range SortKeys {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid sort key: %q", input)
}

// SortItems returns a sorted copy of items. Items without an expiration
// date sort after dated ones for both expiration orders. Unknown keys keep
// the input order.
func SortItems(items []Item, key SortKey) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	col := collate.New(language.English)
	var less func(a, b Item) bool
	switch key {
	case SortNameAsc:
		less = func(a, b Item) bool { return col.CompareString(a.Name, b.Name) < 0 }
	case SortNameDesc:
		less = func(a, b Item) bool { return col.CompareString(b.Name, a.Name) < 0 }
	case SortExpirationAsc:
		less = byExpiration(func(a, b Date) bool { return a.Before(b) })
	case SortExpirationDesc:
		less = byExpiration(func(a, b Date) bool { return a.After(b) })
	case SortCategory:
		less = func(a, b Item) bool { return col.CompareString(string(a.Category), string(b.Category)) < 0 }
	case SortLocation:
		less = func(a, b Item) bool { return col.CompareString(string(a.Location), string(b.Location)) < 0 }
	case SortAddedDesc:
		less = func(a, b Item) bool { return a.AddedDate > b.AddedDate }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func byExpiration(before func(a, b Date) bool) func(a, b Item) bool {
	return func(a, b Item) bool {
		switch {
		case a.Expiration == nil:
			return false
		case b.Expiration == nil:
			return true
		default:
			return before(*a.Expiration, *b.Expiration)
		}
	}
}

// Counts summarizes the whole inventory.
type Counts struct {
	Total        int
	ExpiringSoon int
	Expired      int
}

func CountItems(items []Item, today Date) Counts {
	c := Counts{Total: len(items)}
	for _, it := range items {
		if IsExpiringSoon(it.Expiration, today) {
			c.ExpiringSoon++
		}
		if IsExpired(it.Expiration, today) {
			c.Expired++
		}
	}
	return c
}
