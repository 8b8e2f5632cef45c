package engine

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Variant selects which browser to launch. The set is closed; anything unrecognized means
// VariantDefault, which is Chromium for drivers that launch a real browser.
type Variant int

const (
	VariantDefault Variant = iota
	VariantFirefox
	VariantWebKit
)

// ParseVariant maps a browser name to a Variant, ignoring case and surrounding spaces.
func ParseVariant(name string) Variant {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "firefox":
		return VariantFirefox
	case "webkit":
		return VariantWebKit
	default:
		return VariantDefault
	}
}

func (v Variant) String() string {
	switch v {
	case VariantFirefox:
		return "firefox"
	case VariantWebKit:
		return "webkit"
	default:
		return "default"
	}
}

// Capability returns the driver capability needed to launch this variant, or "" if every
// page-capable driver can launch it.
func (v Variant) Capability() string {
	switch v {
	case VariantFirefox:
		return CapabilityFirefox
	case VariantWebKit:
		return CapabilityWebKit
	default:
		return ""
	}
}

// UnmarshalYAML decodes a browser name with the same fallback rules as ParseVariant.
func (v *Variant) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	*v = ParseVariant(name)
	return nil
}
