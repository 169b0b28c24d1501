package enums

import "fmt"

// CompatMode controls how aggressively candidate lists are narrowed when a
// dependent category (motherboard, RAM) is browsed. Strict hides parts with
// unknown compatibility; lenient shows them flagged.
type CompatMode string

const (
	CompatModeStrict  CompatMode = "strict"
	CompatModeLenient CompatMode = "lenient"
)

// DefaultCompatMode is applied to new builder sessions.
const DefaultCompatMode = CompatModeStrict

func (m CompatMode) String() string {
	return string(m)
}

func (m CompatMode) IsValid() bool {
	return m == CompatModeStrict || m == CompatModeLenient
}

func ParseCompatMode(value string) (CompatMode, error) {
	switch CompatMode(value) {
	case CompatModeStrict:
		return CompatModeStrict, nil
	case CompatModeLenient:
		return CompatModeLenient, nil
	}
	return "", fmt.Errorf("invalid compatibility mode %q", value)
}
