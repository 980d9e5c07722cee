package table

import (
	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/errors"
)

// Describer is implemented by children of a Table that declare a column.
// Children that do not implement it are ignored.
type Describer interface {
	Describe() (Column, error)
}

// ColumnSpec declares one column as a child of a Table. It is configuration
// only: building it panics with a usage error.
type ColumnSpec struct {
	core.StatelessBase

	// Reference names the record field shown in this column. Required.
	Reference string
	// Label is the heading. Empty means the reference is shown.
	Label string
	// CellClass is the class of each <td> in the column.
	CellClass ClassSpec
	// Force makes the column's cells rebuild on every row rebuild.
	Force bool
	// Content renders the cell content. It takes precedence over Component.
	Content CellComponent
	// Component renders the cell content when Content is nil.
	Component CellComponent
	// Props are passed to the cell component with every record.
	Props map[string]any
}

// ColumnOf returns a spec that describes column.
func ColumnOf(column Column) ColumnSpec {
	return ColumnSpec{
		Reference: column.Reference,
		Label:     column.Label,
		CellClass: column.CellClass,
		Force:     column.Force,
		Component: column.Component,
		Props:     column.Props,
	}
}

// Columns wraps column descriptors as Table children.
func Columns(columns ...Column) []core.Widget {
	children := make([]core.Widget, len(columns))
	for i, column := range columns {
		children[i] = ColumnOf(column)
	}
	return children
}

// Describe extracts the column descriptor. Content wins over Component, and
// a spec with neither gets DefaultCell.
func (c ColumnSpec) Describe() (Column, error) {
	if c.Reference == "" {
		return Column{}, errors.Usagef("table.ColumnSpec.Describe", errors.KindConfig,
			"column %q has no reference", c.Label)
	}
	component := c.Content
	if component == nil {
		component = c.Component
	}
	if component == nil {
		component = DefaultCell
	}
	return Column{
		Reference: c.Reference,
		Label:     c.Label,
		Component: component,
		Props:     c.Props,
		CellClass: c.CellClass,
		Force:     c.Force,
	}, nil
}

func (c ColumnSpec) Build(ctx core.BuildContext) core.Widget {
	panic(errors.Usagef("table.ColumnSpec.Build", errors.KindInvalidUse,
		"column %q is table configuration and cannot be rendered on its own", c.Reference))
}

// DeriveColumns extracts the column model from a table's children, in
// declaration order. Children that are not Describers are skipped. An
// invalid spec or a repeated reference is an error.
func DeriveColumns(children []core.Widget) ([]Column, error) {
	columns := make([]Column, 0, len(children))
	seen := make(map[string]bool, len(children))
	for _, child := range children {
		describer, ok := child.(Describer)
		if !ok {
			continue
		}
		column, err := describer.Describe()
		if err != nil {
			return nil, err
		}
		if seen[column.Reference] {
			return nil, errors.Usagef("table.DeriveColumns", errors.KindConfig,
				"duplicate column reference %q", column.Reference)
		}
		seen[column.Reference] = true
		columns = append(columns, column)
	}
	return columns, nil
}
