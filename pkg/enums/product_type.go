package enums

import "fmt"

// ProductType drives the default low-stock threshold for a product.
type ProductType string

const (
	ProductTypeStandard ProductType = "standard"
	ProductTypeBundle   ProductType = "bundle"
)

var validProductTypes = []ProductType{
	ProductTypeStandard,
	ProductTypeBundle,
}

const (
	defaultThresholdStandard = 20
	defaultThresholdBundle   = 10
	defaultThresholdFallback = 15
)

// String implements fmt.Stringer.
func (p ProductType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductType.
func (p ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}

// DefaultLowStockThreshold returns the per-warehouse threshold used when an
// inventory row carries no explicit override.
func (p ProductType) DefaultLowStockThreshold() int {
	switch p {
	case ProductTypeStandard:
		return defaultThresholdStandard
	case ProductTypeBundle:
		return defaultThresholdBundle
	default:
		return defaultThresholdFallback
	}
}
