package patterns

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// patternsFileJSON is the object form of a patterns file.
type patternsFileJSON struct {
	Patterns []string `json:"patterns"`
}

// FromPatternsFile loads explicit patterns from a JSON file holding either
// an array of pattern strings or an object with a "patterns" key. A missing
// file yields an empty set; malformed JSON is a configuration error.
func FromPatternsFile(path string) (*PatternSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return compile(nil)
		}
		return nil, fmt.Errorf("read patterns file: %w", err)
	}

	var sources []string
	if err := json.Unmarshal(data, &sources); err != nil {
		var obj patternsFileJSON
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("patterns file %s: not a JSON array or {\"patterns\": [...]} object: %w", path, err)
		}
		sources = obj.Patterns
	}
	return FromExplicit(sources)
}

// FromHeadersFile loads header names from a file holding either a JSON
// array, an object with a "headers" key, or, when JSON parsing fails,
// newline-separated names. A missing file yields an empty header list, so
// without includeDefaults the resulting set matches nothing.
func FromHeadersFile(path string, includeDefaults bool) (*PatternSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FromHeaderNames(nil, includeDefaults)
		}
		return nil, fmt.Errorf("read headers file: %w", err)
	}
	return FromHeaderNames(parseHeaderList(data), includeDefaults)
}

func parseHeaderList(data []byte) []string {
	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err == nil {
		switch v := parsed.(type) {
		case []interface{}:
			return stringElements(v)
		case map[string]interface{}:
			if list, ok := v["headers"].([]interface{}); ok {
				return stringElements(list)
			}
			return nil
		default:
			// Valid JSON but neither accepted shape.
			return nil
		}
	}

	// Not JSON; treat as newline-separated names.
	var headers []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			headers = append(headers, line)
		}
	}
	return headers
}

func stringElements(list []interface{}) []string {
	var out []string
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
