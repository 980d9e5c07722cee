package table

// ClassSpec is a CSS class that is either absent, a literal, or computed
// from the record being rendered. The zero value is absent.
type ClassSpec struct {
	literal string
	compute func(Record) string
}

// Literal returns a ClassSpec that always resolves to class.
func Literal(class string) ClassSpec {
	return ClassSpec{literal: class}
}

// Computed returns a ClassSpec resolved by calling fn with each record.
func Computed(fn func(Record) string) ClassSpec {
	return ClassSpec{compute: fn}
}

// FieldClass returns a ClassSpec that reads field from the record and
// prefixes its formatted value. Records without the field get no class.
func FieldClass(field, prefix string) ClassSpec {
	return Computed(func(record Record) string {
		value, ok := Lookup(record, field)
		if !ok || value == nil {
			return ""
		}
		return prefix + FormatValue(value)
	})
}

// IsAbsent reports whether the spec resolves to no class for every record.
func (c ClassSpec) IsAbsent() bool {
	return c.compute == nil && c.literal == ""
}

// Resolve returns the class for record.
func (c ClassSpec) Resolve(record Record) string {
	if c.compute != nil {
		return c.compute(record)
	}
	return c.literal
}
