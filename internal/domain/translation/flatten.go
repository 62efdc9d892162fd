package translation

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Flatten turns a decoded locale file into a flat key to string map. Nested
// objects produce dotted keys; numbers and booleans are formatted; null and
// arrays are dropped.
func Flatten(doc map[string]any) map[string]string {
	out := make(map[string]string, len(doc))
	flatten("", doc, out)
	return out
}

func flatten(prefix string, doc map[string]any, out map[string]string) {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flatten(key, val, out)
		case float64:
			out[key] = strconv.FormatFloat(val, 'f', -1, 64)
		case json.Number:
			out[key] = val.String()
		case bool:
			out[key] = strconv.FormatBool(val)
		}
	}
}

// Parse decodes and flattens one locale file.
func Parse(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode locale file: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decode locale file: not a JSON object")
	}
	return Flatten(doc), nil
}
