package enums

import "fmt"

// Purity identifies the metal fineness of a variant.
type Purity string

const (
	Purity22K    Purity = "22K"
	Purity18K    Purity = "18K"
	Purity14K    Purity = "14K"
	PuritySilver Purity = "925"
)

var validPurities = []Purity{
	Purity22K,
	Purity18K,
	Purity14K,
	PuritySilver,
}

// String implements fmt.Stringer.
func (p Purity) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Purity.
func (p Purity) IsValid() bool {
	for _, candidate := range validPurities {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePurity converts raw input into a Purity.
func ParsePurity(value string) (Purity, error) {
	for _, candidate := range validPurities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purity %q", value)
}
