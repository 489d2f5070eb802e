package enums

import "fmt"

// MetalType classifies a product's base metal.
type MetalType string

const (
	MetalGold     MetalType = "gold"
	MetalSilver   MetalType = "silver"
	MetalPlatinum MetalType = "platinum"
)

var validMetalTypes = []MetalType{
	MetalGold,
	MetalSilver,
	MetalPlatinum,
}

// String implements fmt.Stringer.
func (m MetalType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MetalType.
func (m MetalType) IsValid() bool {
	for _, candidate := range validMetalTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMetalType converts raw input into a MetalType.
func ParseMetalType(value string) (MetalType, error) {
	for _, candidate := range validMetalTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid metal type %q", value)
}
