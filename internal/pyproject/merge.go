package pyproject

import "reflect"

// MergeDeep returns a copy of target with source merged in. Keys missing
// from target are inserted, tables present on both sides are merged
// recursively, and any other collision takes the source value. Keys that only
// exist in target are left as they were. Neither argument is modified.
func MergeDeep(target Document, source map[string]any) Document {
	merged := target.Clone()
	mergeInto(merged, source)
	return merged
}

func mergeInto(target, source map[string]any) {
	for key, value := range source {
		existing, present := target[key]
		if present {
			dst, dstIsTable := existing.(map[string]any)
			src, srcIsTable := value.(map[string]any)
			if dstIsTable && srcIsTable {
				mergeInto(dst, src)
				continue
			}
		}
		target[key] = cloneValue(value)
	}
}

// Equal reports whether two documents hold the same values.
func Equal(a, b Document) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(map[string]any(a), map[string]any(b))
}

func cloneTable(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies tables and arrays. String slices are widened to []any
// so merged documents keep the same shapes a decoded manifest has.
func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return cloneTable(typed)
	case Document:
		return cloneTable(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneTable(item)
		}
		return out
	default:
		return v
	}
}
