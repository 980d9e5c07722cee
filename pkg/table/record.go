package table

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Record is one data item: a mapping from field name to value. Records are
// owned by the caller and never mutated by the table.
type Record map[string]any

// Lookup reads reference from record. An exact key match wins; otherwise a
// dotted reference such as "address.city" descends into nested maps, and a
// numeric part such as the 0 in "items.0.name" indexes a []any. The boolean
// reports whether the reference resolved.
func Lookup(record Record, reference string) (any, bool) {
	if record == nil {
		return nil, false
	}
	if value, ok := record[reference]; ok {
		return value, true
	}
	if !strings.Contains(reference, ".") {
		return nil, false
	}
	var current any = record
	for _, part := range strings.Split(reference, ".") {
		value, ok := step(current, part)
		if !ok {
			return nil, false
		}
		current = value
	}
	return current, true
}

// step reads one path part out of a nested map or list.
func step(current any, part string) (any, bool) {
	switch c := current.(type) {
	case Record:
		value, ok := c[part]
		return value, ok
	case map[string]any:
		value, ok := c[part]
		return value, ok
	case []any:
		index, err := strconv.Atoi(part)
		if err != nil || index < 0 || index >= len(c) {
			return nil, false
		}
		return c[index], true
	}
	return nil, false
}

// FormatValue renders a field value as cell text. Nil renders as "".
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// sameValue is the shallow comparison used by cells. Comparable values are
// compared with ==; maps and slices by identity. Funcs never compare equal.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() {
		return va.Equal(vb)
	}
	switch va.Kind() {
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return false
}
