package domain

import "strings"

// FieldPrefix marks an element id as substitutable ("dyno.price").
const FieldPrefix = "dyno."

// PlaceholderKind is inferred structurally by the analyzer.
type PlaceholderKind string

const (
	KindText  PlaceholderKind = "text"
	KindImage PlaceholderKind = "image"
)

// TextRule selects how a text placeholder is rewritten.
type TextRule string

const (
	RulePlain   TextRule = "plain"   // Replace the text run verbatim
	RuleAddress TextRule = "address" // Up to three comma-separated lines
	RulePaired  TextRule = "paired"  // Number and word at a fixed horizontal offset
)

// ImageRole selects the fit policy of an image placeholder.
type ImageRole string

const (
	RoleCover ImageRole = "cover" // Headshots and avatars (circular masks)
	RoleLogo  ImageRole = "logo"  // Small contain box
	RolePhoto ImageRole = "photo" // Large contain box
)

// Point is a position in document user units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placeholder describes one substitutable element of a template.
type Placeholder struct {
	FieldName string          `json:"field"`
	ElementID string          `json:"element_id"`
	Kind      PlaceholderKind `json:"kind"`
	Rule      TextRule        `json:"rule,omitempty"`
	Role      ImageRole       `json:"role,omitempty"`
	Original  string          `json:"original,omitempty"`

	// Anchor is the text position used to lay out generated lines.
	Anchor    Point `json:"anchor"`
	HasAnchor bool  `json:"has_anchor"`
}

// FieldFromID extracts the logical field name from an element id.
// It returns false when the id does not follow the placeholder convention.
func FieldFromID(id string) (string, bool) {
	_, field, ok := strings.Cut(id, FieldPrefix)
	if !ok || field == "" {
		return "", false
	}
	return field, true
}

// NormalizeField strips the optional namespace from a caller-supplied key.
func NormalizeField(key string) string {
	return strings.TrimPrefix(key, FieldPrefix)
}

// ClassifyText assigns the text rule for a field name.
// The tag is fixed once per template analysis.
func ClassifyText(field string) TextRule {
	lower := strings.ToLower(field)
	switch {
	case strings.Contains(lower, "address"):
		return RuleAddress
	case strings.Contains(lower, "bedroom"), strings.Contains(lower, "bathroom"):
		return RulePaired
	default:
		return RulePlain
	}
}

// ClassifyImage assigns the fit role for an image field name.
func ClassifyImage(field string) ImageRole {
	lower := strings.ToLower(field)
	switch {
	case strings.Contains(lower, "headshot"), strings.Contains(lower, "avatar"):
		return RoleCover
	case strings.Contains(lower, "logo"):
		return RoleLogo
	default:
		return RolePhoto
	}
}
