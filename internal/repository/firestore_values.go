package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Firestore REST documents carry every field as a typed value object such
// as {"stringValue": "x"} or {"arrayValue": {"values": [...]}}.

func encodeFirestoreFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = encodeFirestoreValue(v)
	}
	return out
}

func encodeFirestoreValue(v any) map[string]any {
	switch t := v.(type) {
	case nil:
		return map[string]any{"nullValue": nil}
	case bool:
		return map[string]any{"booleanValue": t}
	case string:
		return map[string]any{"stringValue": t}
	case int:
		return map[string]any{"integerValue": strconv.Itoa(t)}
	case int32:
		return map[string]any{"integerValue": strconv.FormatInt(int64(t), 10)}
	case int64:
		return map[string]any{"integerValue": strconv.FormatInt(t, 10)}
	case float32:
		return map[string]any{"doubleValue": float64(t)}
	case float64:
		return map[string]any{"doubleValue": t}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return map[string]any{"integerValue": strconv.FormatInt(i, 10)}
		}
		f, _ := t.Float64()
		return map[string]any{"doubleValue": f}
	case []string:
		values := make([]any, 0, len(t))
		for _, s := range t {
			values = append(values, encodeFirestoreValue(s))
		}
		return map[string]any{"arrayValue": map[string]any{"values": values}}
	case []any:
		values := make([]any, 0, len(t))
		for _, item := range t {
			values = append(values, encodeFirestoreValue(item))
		}
		return map[string]any{"arrayValue": map[string]any{"values": values}}
	case map[string]any:
		return map[string]any{"mapValue": map[string]any{"fields": encodeFirestoreFields(t)}}
	default:
		// Structs and other shapes go through their JSON form.
		raw, err := json.Marshal(t)
		if err != nil {
			return map[string]any{"stringValue": fmt.Sprint(t)}
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return map[string]any{"stringValue": string(raw)}
		}
		return encodeFirestoreValue(generic)
	}
}

func decodeFirestoreFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = decodeFirestoreValue(v)
	}
	return out
}

func decodeFirestoreValue(v any) any {
	value, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	for kind, raw := range value {
		switch kind {
		case "nullValue":
			return nil
		case "booleanValue":
			b, _ := raw.(bool)
			return b
		case "stringValue", "timestampValue", "referenceValue", "bytesValue":
			s, _ := raw.(string)
			return s
		case "integerValue":
			switch n := raw.(type) {
			case string:
				i, err := strconv.ParseInt(n, 10, 64)
				if err != nil {
					return nil
				}
				return i
			case float64:
				return int64(n)
			}
			return nil
		case "doubleValue":
			switch n := raw.(type) {
			case float64:
				return n
			case string:
				f, err := strconv.ParseFloat(n, 64)
				if err != nil {
					return nil
				}
				return f
			}
			return nil
		case "arrayValue":
			arr, _ := raw.(map[string]any)
			items, _ := arr["values"].([]any)
			out := make([]any, 0, len(items))
			for _, item := range items {
				out = append(out, decodeFirestoreValue(item))
			}
			return out
		case "mapValue":
			m, _ := raw.(map[string]any)
			inner, _ := m["fields"].(map[string]any)
			return decodeFirestoreFields(inner)
		case "geoPointValue":
			return raw
		}
	}
	return nil
}
