package utils

import (
	"encoding/json"
	"strings"
)

// ParseStringList normalizes a loosely formatted list field. Clients send
// course features as a JSON array, a comma separated string, or a single
// value; the fallback order is JSON parse, then comma split, then a
// one-element list. Blank entries are dropped.
func ParseStringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return trimNonEmpty(parsed)
	}

	if strings.Contains(raw, ",") {
		return trimNonEmpty(strings.Split(raw, ","))
	}

	return []string{raw}
}

func trimNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
