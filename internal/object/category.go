package object

import "strings"

// Category is the collision bitmask a body belongs to.
type Category uint32

const (
	CategoryNone        Category = 0
	CategoryShip        Category = 1 << 0
	CategoryMeteor      Category = 1 << 1
	CategoryGuard       Category = 1 << 2
	CategoryIncreaser   Category = 1 << 3
	CategoryDecreaser   Category = 1 << 4
	CategoryGoldPowerUp Category = 1 << 5
)

var categoryNames = []struct {
	c    Category
	name string
}{
	{CategoryShip, "ship"},
	{CategoryMeteor, "meteor"},
	{CategoryGuard, "guard"},
	{CategoryIncreaser, "increaser"},
	{CategoryDecreaser, "decreaser"},
	{CategoryGoldPowerUp, "gold"},
}

func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	var parts []string
	for _, cn := range categoryNames {
		if c&cn.c != 0 {
			parts = append(parts, cn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Has reports whether c includes every bit of o.
func (c Category) Has(o Category) bool {
	return o != CategoryNone && c&o == o
}

// pickupCategories are the categories a ship reacts to besides meteors.
const pickupCategories = CategoryGuard | CategoryIncreaser | CategoryDecreaser | CategoryGoldPowerUp

// ContactMask returns the categories a body of the given kind and category reports contacts with.
func ContactMask(kind Kind, category Category) Category {
	switch kind {
	case KindShip:
		return CategoryMeteor | pickupCategories
	case KindGuard:
		return CategoryMeteor
	case KindMeteor:
		return CategoryShip
	case KindPowerUp, KindHazard:
		if category == CategoryNone {
			return CategoryNone
		}
		return CategoryShip
	default:
		return CategoryNone
	}
}

// CanContact reports whether the host should report a contact between a and b.
// A pair qualifies when either body's contact mask includes the other's category.
// Guard shields never contact their own ship.
func CanContact(a, b *Entity) bool {
	if a == nil || b == nil || a.Handle == b.Handle {
		return false
	}
	if a.Owner == b.Handle || b.Owner == a.Handle {
		return false
	}
	return ContactMask(a.Kind, a.Category)&b.Category != 0 ||
		ContactMask(b.Kind, b.Category)&a.Category != 0
}
