package valueobjects

import "fmt"

// Category classifies a house plan by building type.
type Category string

const (
	CategoryVilla      Category = "villa"
	CategoryBungalow   Category = "bungalow"
	CategoryTownhouse  Category = "townhouse"
	CategoryDuplex     Category = "duplex"
	CategoryApartment  Category = "apartment"
	CategoryCommercial Category = "commercial"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryVilla, CategoryBungalow, CategoryTownhouse,
		CategoryDuplex, CategoryApartment, CategoryCommercial:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid plan category: %s", s)
	}
	return c, nil
}
