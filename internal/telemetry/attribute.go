package telemetry

import (
	"fmt"
	"reflect"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ApplyTraceAttributes 依 `trace:"key[,omitempty]"` tag 把 meta 結構寫入 span
// 巢狀結構與指標會展開，map 以 key.子鍵 命名
func (t *Trace) ApplyTraceAttributes(span trace.Span, obj interface{}) {
	if span == nil || obj == nil || !span.IsRecording() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			span.RecordError(fmt.Errorf("ApplyTraceAttributes panic: %v", r))
		}
	}()
	if attrs := collectAttributes(reflect.ValueOf(obj), nil); len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

func collectAttributes(val reflect.Value, attrs []attribute.KeyValue) []attribute.KeyValue {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return attrs
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return attrs
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		key, omitEmpty := parseTraceTag(typ.Field(i).Tag.Get("trace"))
		field := val.Field(i)
		if key == "" || !field.CanInterface() {
			continue
		}
		if omitEmpty && field.IsZero() {
			continue
		}

		switch field.Kind() {
		case reflect.Struct, reflect.Ptr:
			attrs = collectAttributes(field, attrs)
		case reflect.Map:
			attrs = appendMapAttributes(key, field, attrs)
		case reflect.Slice, reflect.Array:
			if field.Type().Elem().Kind() != reflect.String {
				continue
			}
			strs := make([]string, field.Len())
			for j := range strs {
				strs[j] = field.Index(j).String()
			}
			attrs = append(attrs, attribute.StringSlice(key, strs))
		default:
			if kv, ok := scalarAttribute(key, field); ok {
				attrs = append(attrs, kv)
			}
		}
	}
	return attrs
}

func appendMapAttributes(prefix string, m reflect.Value, attrs []attribute.KeyValue) []attribute.KeyValue {
	if m.Type().Key().Kind() != reflect.String {
		return attrs
	}
	iter := m.MapRange()
	for iter.Next() {
		if kv, ok := scalarAttribute(prefix+"."+iter.Key().String(), iter.Value()); ok {
			attrs = append(attrs, kv)
		}
	}
	return attrs
}

func scalarAttribute(key string, v reflect.Value) (attribute.KeyValue, bool) {
	switch v.Kind() {
	case reflect.String:
		return attribute.String(key, v.String()), true
	case reflect.Bool:
		return attribute.Bool(key, v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return attribute.Int64(key, v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return attribute.Int64(key, int64(v.Uint())), true
	case reflect.Float32, reflect.Float64:
		return attribute.Float64(key, v.Float()), true
	}
	return attribute.KeyValue{}, false
}

func parseTraceTag(raw string) (key string, omitEmpty bool) {
	if raw == "" || raw == "-" {
		return "", false
	}
	parts := strings.Split(raw, ",")
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) == "omitempty" {
			omitEmpty = true
		}
	}
	return strings.TrimSpace(parts[0]), omitEmpty
}
