package enums

import "fmt"

// ChangeReason is the enumerated cause of an inventory quantity change.
type ChangeReason string

const (
	ChangeReasonSale       ChangeReason = "sale"
	ChangeReasonRestock    ChangeReason = "restock"
	ChangeReasonAdjustment ChangeReason = "adjustment"
	ChangeReasonTransfer   ChangeReason = "transfer"
	ChangeReasonInitial    ChangeReason = "initial"
)

var validChangeReasons = []ChangeReason{
	ChangeReasonSale,
	ChangeReasonRestock,
	ChangeReasonAdjustment,
	ChangeReasonTransfer,
	ChangeReasonInitial,
}

// String implements fmt.Stringer.
func (c ChangeReason) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ChangeReason.
func (c ChangeReason) IsValid() bool {
	for _, candidate := range validChangeReasons {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseChangeReason converts raw input into a ChangeReason.
func ParseChangeReason(value string) (ChangeReason, error) {
	for _, candidate := range validChangeReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid change reason %q", value)
}
