package pantry

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryDairy      Category = "dairy"
	CategoryProduce    Category = "produce"
	CategoryMeat       Category = "meat"
	CategoryPantry     Category = "pantry"
	CategoryFrozen     Category = "frozen"
	CategorySnacks     Category = "snacks"
	CategoryBeverages  Category = "beverages"
	CategoryCondiments Category = "condiments"
	CategoryBaking     Category = "baking"
	CategoryOther      Category = "other"
)

var Categories = []Category{
	CategoryDairy, CategoryProduce, CategoryMeat, CategoryPantry, CategoryFrozen,
	CategorySnacks, CategoryBeverages, CategoryCondiments, CategoryBaking, CategoryOther,
}

type Location string

const (
	LocationFridge  Location = "fridge"
	LocationFreezer Location = "freezer"
	LocationPantry  Location = "pantry"
	LocationCabinet Location = "cabinet"
	LocationCounter Location = "counter"
)

var Locations = []Location{LocationFridge, LocationFreezer, LocationPantry, LocationCabinet, LocationCounter}

// Label pairs a display name with its emoji.
type Label struct {
	Emoji string
	Name  string
}

var categoryLabels = map[Category]Label{
	CategoryDairy:      {"🥛", "Dairy & Eggs"},
	CategoryProduce:    {"🥬", "Produce"},
	CategoryMeat:       {"🥩", "Meat & Seafood"},
	CategoryPantry:     {"🥫", "Pantry Staples"},
	CategoryFrozen:     {"🧊", "Frozen"},
	CategorySnacks:     {"🍿", "Snacks"},
	CategoryBeverages:  {"🥤", "Beverages"},
	CategoryCondiments: {"🧂", "Condiments & Sauces"},
	CategoryBaking:     {"🍪", "Baking"},
	CategoryOther:      {"📦", "Other"},
}

var locationLabels = map[Location]Label{
	LocationFridge:  {"🧊", "Refrigerator"},
	LocationFreezer: {"❄️", "Freezer"},
	LocationPantry:  {"🚪", "Pantry"},
	LocationCabinet: {"🗄️", "Cabinet"},
	LocationCounter: {"🪑", "Counter"},
}

func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() Label {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return Label{Emoji: "📦", Name: string(c)}
}

func (l Location) IsValid() bool {
	_, ok := locationLabels[l]
	return ok
}

func (l Location) Label() Label {
	if lb, ok := locationLabels[l]; ok {
		return lb
	}
	return Label{Emoji: "📍", Name: string(l)}
}

func ParseCategory(input string) (Category, error) {
	c := Category(strings.TrimSpace(strings.ToLower(input)))
	if !c.IsValid() {
		return "", ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", input)}
	}
	return c, nil
}

func ParseLocation(input string) (Location, error) {
	l := Location(strings.TrimSpace(strings.ToLower(input)))
	if !l.IsValid() {
		return "", ValidationError{Field: "location", Reason: fmt.Sprintf("unknown location %q", input)}
	}
	return l, nil
}

const dateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day or zone. It is stored as
// "YYYY-MM-DD".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate accepts "YYYY-MM-DD" or a full RFC 3339 timestamp (whose date
// part is kept).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return Date{}, ValidationError{Field: "expiration", Reason: fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", s)}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string { return d.Time().Format(dateLayout) }

// AddDays returns the day n days later.
func (d Date) AddDays(n int) Date { return DateOf(d.Time().AddDate(0, 0, n)) }

func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }

func (d Date) After(o Date) bool { return d.Time().After(o.Time()) }

func (d Date) Compare(o Date) int { return d.Time().Compare(o.Time()) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Item struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Quantity   int      `json:"quantity"`
	Unit       string   `json:"unit"`
	Category   Category `json:"category"`
	Location   Location `json:"location"`
	Expiration *Date    `json:"expiration"`
	Notes      *string  `json:"notes"`
	// AddedDate is the creation time in Unix milliseconds.
	AddedDate int64 `json:"addedDate"`
}

// Draft is the user-entered part of an item, before it gets an id and
// creation time.
type Draft struct {
	Name       string
	Quantity   int
	Unit       string
	Category   Category
	Location   Location
	Expiration *Date
	Notes      string
}

// DraftOf copies an existing item's fields into a Draft, for editing.
func DraftOf(it Item) Draft {
	d := Draft{
		Name:       it.Name,
		Quantity:   it.Quantity,
		Unit:       it.Unit,
		Category:   it.Category,
		Location:   it.Location,
		Expiration: it.Expiration,
	}
	if it.Notes != nil {
		d.Notes = *it.Notes
	}
	return d
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Field: "name", Reason: "is required"}
	}
	if d.Quantity <= 0 {
		return ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if !d.Category.IsValid() {
		return ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", d.Category)}
	}
	if !d.Location.IsValid() {
		return ValidationError{Field: "location", Reason: fmt.Sprintf("unknown location %q", d.Location)}
	}
	return nil
}
