package analytics

import (
	"encoding/json"
	"fmt"
)

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case []string, map[string]interface{}:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	default:
		return fmt.Sprint(val)
	}
}

// Flatten renders props as strings, for sinks that only store text values.
func Flatten(props Properties) map[string]interface{} {
	out := make(map[string]interface{}, len(props))
	for k, v := range props {
		out[k] = stringify(v)
	}
	return out
}
