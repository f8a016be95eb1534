package service

import "math"

// normalizeObject rewrites decoded scalars to canonical types so that an
// object read back from a store compares cleanly against freshly decoded
// input: the changeset engine's equality is type-strict, and msgpack, YAML
// and JSON decoders disagree about integer widths.
//
// All signed and unsigned integers widen to int64 (uint64 values above
// math.MaxInt64 are kept as uint64), float32 widens to float64. The input is
// not mutated.
func normalizeObject(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeObject(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalizeValue(item)
		}
		return out
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		if t > math.MaxInt64 {
			return t
		}
		return int64(t)
	case float32:
		return float64(t)
	}
	return v
}
