package catalog

import "fmt"

// ProductType filters product lists and scopes their cache keys.
type ProductType string

const (
	Single   ProductType = "single"
	Multiple ProductType = "multiple"
	All      ProductType = "all"
)

// VariantType is the literal the backend stores on each product.
type VariantType string

const (
	SingleVariant   VariantType = "singleVarient"
	MultipleVariant VariantType = "multipleVarient"
)

func ParseProductType(s string) (ProductType, error) {
	switch ProductType(s) {
	case Single, Multiple, All:
		return ProductType(s), nil
	case "":
		return All, nil
	default:
		return "", fmt.Errorf("unknown product type %q (want single, multiple or all)", s)
	}
}

// Variant is the variant literal for t; All has none.
func (t ProductType) Variant() VariantType {
	switch t {
	case Single:
		return SingleVariant
	case Multiple:
		return MultipleVariant
	default:
		return ""
	}
}

// TypeOf maps a stored variant literal back to its product type.
func TypeOf(v VariantType) ProductType {
	switch v {
	case SingleVariant:
		return Single
	case MultipleVariant:
		return Multiple
	default:
		return All
	}
}
