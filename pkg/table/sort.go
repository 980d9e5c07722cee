package table

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
)

// SortOrder is the table's sort selection. The zero value is unsorted.
type SortOrder struct {
	column    Column
	sorted    bool
	ascending bool
}

// Sorted returns the order that sorts by column in the given direction.
func Sorted(column Column, ascending bool) SortOrder {
	return SortOrder{column: column, sorted: true, ascending: ascending}
}

// IsEmpty reports whether no column is sorted.
func (o SortOrder) IsEmpty() bool {
	return !o.sorted
}

// Column returns the sorted column. The boolean is false when unsorted.
func (o SortOrder) Column() (Column, bool) {
	return o.column, o.sorted
}

// Ascending reports the sort direction. It is false when unsorted.
func (o SortOrder) Ascending() bool {
	return o.sorted && o.ascending
}

// SortsBy reports whether the order sorts by the column with reference.
func (o SortOrder) SortsBy(reference string) bool {
	return o.sorted && o.column.Reference == reference
}

// Next returns the order after a header click on column. A column cycles
// ascending, descending, unsorted; clicking any other column starts that
// column at ascending.
func (o SortOrder) Next(column Column) SortOrder {
	switch {
	case !o.SortsBy(column.Reference):
		return Sorted(column, true)
	case o.ascending:
		return Sorted(column, false)
	default:
		return SortOrder{}
	}
}

// Indicator returns the glyph name shown in column's heading, or "" when the
// column is not the sorted one.
func (o SortOrder) Indicator(column Column) string {
	if !o.SortsBy(column.Reference) {
		return ""
	}
	if o.ascending {
		return "chevron-up"
	}
	return "chevron-down"
}

func (o SortOrder) String() string {
	if !o.sorted {
		return "unsorted"
	}
	if o.ascending {
		return o.column.Reference + " asc"
	}
	return o.column.Reference + " desc"
}

// DisplayOrder returns data in the order the table shows it. An empty order
// returns data itself. Otherwise the result is a stably sorted copy: records
// with equal values keep their relative input order in both directions.
//
// Absent and nil values sort after all others ascending and before them
// descending. A nil collator compares strings byte-wise.
func DisplayOrder(data []Record, order SortOrder, collator *collate.Collator) []Record {
	if order.IsEmpty() {
		return data
	}
	reference := order.column.Reference
	sorted := slices.Clone(data)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		av, aok := Lookup(a, reference)
		bv, bok := Lookup(b, reference)
		c := compareValues(av, aok, bv, bok, collator)
		if !order.ascending {
			c = -c
		}
		return c
	})
	return sorted
}

const (
	rankBool = iota
	rankNumber
	rankTime
	rankString
	rankOther
)

// compareValues orders two field values ascending.
func compareValues(a any, aok bool, b any, bok bool, collator *collate.Collator) int {
	aAbsent, bAbsent := !aok || a == nil, !bok || b == nil
	switch {
	case aAbsent && bAbsent:
		return 0
	case aAbsent:
		return 1
	case bAbsent:
		return -1
	}

	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankBool:
		return compareBool(reflect.ValueOf(a).Bool(), reflect.ValueOf(b).Bool())
	case rankNumber:
		return compareNumbers(reflect.ValueOf(a), reflect.ValueOf(b))
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	case rankString:
		return compareStrings(reflect.ValueOf(a).String(), reflect.ValueOf(b).String(), collator)
	default:
		return compareStrings(fmt.Sprint(a), fmt.Sprint(b), collator)
	}
}

func rank(value any) int {
	if _, ok := value.(time.Time); ok {
		return rankTime
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool:
		return rankBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return rankNumber
	case reflect.String:
		return rankString
	}
	return rankOther
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareNumbers(a, b reflect.Value) int {
	switch {
	case a.CanInt() && b.CanInt():
		return cmp.Compare(a.Int(), b.Int())
	case a.CanUint() && b.CanUint():
		return cmp.Compare(a.Uint(), b.Uint())
	case a.CanInt() && b.CanUint():
		if a.Int() < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.Int()), b.Uint())
	case a.CanUint() && b.CanInt():
		return -compareNumbers(b, a)
	}
	return compareFloats(toFloat(a), toFloat(b))
}

func toFloat(v reflect.Value) float64 {
	switch {
	case v.CanInt():
		return float64(v.Int())
	case v.CanUint():
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

// compareFloats places NaN after every other number.
func compareFloats(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	return cmp.Compare(a, b)
}

func compareStrings(a, b string, collator *collate.Collator) int {
	if collator != nil {
		return collator.CompareString(a, b)
	}
	return strings.Compare(a, b)
}
