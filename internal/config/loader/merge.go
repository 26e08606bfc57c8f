package loader

import "strings"

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}

// Flatten returns the leaves of a nested map keyed by dotted path.
func Flatten(data map[string]any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", data)
	return out
}

func flattenInto(out map[string]any, prefix string, data map[string]any) {
	for key, val := range data {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if m, ok := val.(map[string]any); ok {
			flattenInto(out, path, m)
			continue
		}
		out[path] = val
	}
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
