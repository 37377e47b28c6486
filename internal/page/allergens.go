package page

import (
	"bytes"
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

// NormalizeAllergens reads the allergens column in any of the shapes writers
// have used and returns a clean list. Lists pass through trimmed, strings are
// split on commas, scalars become one element and null or missing is empty.
// The result never contains blank entries.
func NormalizeAllergens(raw []byte) []string {
	out := []string{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return out
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		// Not JSON at all: a bare comma list written by an old form.
		return splitList(string(trimmed))
	}

	switch val := v.(type) {
	case []any:
		for _, el := range val {
			if s := scalarText(el); s != "" {
				out = append(out, s)
			}
		}
	case string:
		return splitList(val)
	case map[string]any:
		return out
	default:
		if s := scalarText(val); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EncodeAllergens stores the canonical list form.
func EncodeAllergens(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return datatypes.JSON(b)
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func scalarText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case []any, map[string]any:
		return ""
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(b))
	}
}
