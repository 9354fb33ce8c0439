package catalog

import "slices"

// localized picks a value from a per-language string map. Fallback order:
// the requested language, then "en", then "ja", then the lexicographically
// first remaining key so repeated lookups stay deterministic.
func localized(values map[string]string, lang string) string {
	if len(values) == 0 {
		return ""
	}

	for _, candidate := range []string{lang, "en", "ja"} {
		if candidate == "" {
			continue
		}
		if v := values[candidate]; v != "" {
			return v
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if values[k] != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	slices.Sort(keys)
	return values[keys[0]]
}
