package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a schema value for comment text. Strings are kept
// raw, floats keep a decimal point, and mappings and lists become compact
// JSON in their original key order.
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case nil, *Metadata, []any, map[string]any:
		out, err := encodeJSON(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(out)
	default:
		return fmt.Sprint(val)
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !math.IsInf(f, 0) && !math.IsNaN(f) && !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
