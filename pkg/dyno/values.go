package dyno

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mitchellh/mapstructure"
)

// DecodeValues converts loosely typed field data (JSON numbers, YAML ints,
// booleans) into the string map the substitution engine takes. nil yields nil.
func DecodeValues(raw any) (map[string]string, error) {
	if raw == nil {
		return nil, nil
	}
	var out map[string]string
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Result:           &out,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode field values: %w", err)
	}
	return out, nil
}

// SanitizeText makes a field value safe to embed as SVG character data.
// Invalid UTF-8 is replaced with U+FFFD and control characters other than
// newline, tab and carriage return are dropped, since XML 1.0 forbids them.
func SanitizeText(value string) string {
	value = strings.ToValidUTF8(value, "\uFFFD")
	clean := true
	for _, r := range value {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return value
	}

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
