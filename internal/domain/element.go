package domain

import "github.com/shopspring/decimal"

// Category groups elements for colouring and filtering.
type Category string

const (
	CategoryAlkaliMetal    Category = "alkali-metal"
	CategoryAlkalineEarth  Category = "alkaline-earth"
	CategoryTransition     Category = "transition"
	CategoryPostTransition Category = "post-transition"
	CategoryMetalloid      Category = "metalloid"
	CategoryNonmetal       Category = "nonmetal"
	CategoryNobleGas       Category = "noble-gas"
	CategoryLanthanide     Category = "lanthanide"
	CategoryActinide       Category = "actinide"
	CategoryUnknown        Category = "unknown"
)

// Label is the human readable form used in hints.
func (c Category) Label() string {
	switch c {
	case CategoryAlkaliMetal:
		return "an alkali metal"
	case CategoryAlkalineEarth:
		return "an alkaline earth metal"
	case CategoryTransition:
		return "a transition metal"
	case CategoryPostTransition:
		return "a post-transition metal"
	case CategoryMetalloid:
		return "a metalloid"
	case CategoryNonmetal:
		return "a nonmetal"
	case CategoryNobleGas:
		return "a noble gas"
	case CategoryLanthanide:
		return "a lanthanide"
	case CategoryActinide:
		return "an actinide"
	default:
		return "of unknown chemical properties"
	}
}

// Element is one immutable row of the periodic table.
// Period 8 and 9 are the display rows of the lanthanides and actinides; Group is
// the display column.
type Element struct {
	Symbol       string              `json:"symbol"`
	Name         string              `json:"name"`
	AtomicNumber int                 `json:"atomicNumber"`
	Category     Category            `json:"category"`
	AtomicMass   decimal.NullDecimal `json:"atomicMass"`
	Period       int                 `json:"period"`
	Group        int                 `json:"group"`
}
