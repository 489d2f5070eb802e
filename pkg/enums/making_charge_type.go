package enums

import "fmt"

// MakingChargeType controls how a variant's making charge is applied.
type MakingChargeType string

const (
	MakingChargePerGram MakingChargeType = "per_gram"
	MakingChargeFixed   MakingChargeType = "fixed"
)

var validMakingChargeTypes = []MakingChargeType{
	MakingChargePerGram,
	MakingChargeFixed,
}

// String implements fmt.Stringer.
func (m MakingChargeType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MakingChargeType.
func (m MakingChargeType) IsValid() bool {
	for _, candidate := range validMakingChargeTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMakingChargeType converts raw input into a MakingChargeType.
func ParseMakingChargeType(value string) (MakingChargeType, error) {
	for _, candidate := range validMakingChargeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid making charge type %q", value)
}
