package table

import (
	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/widgets"
)

// CellProps is what a CellComponent receives for one record.
type CellProps struct {
	// Record is the whole record the cell belongs to.
	Record Record
	// Value is the field the column references, nil when Present is false.
	Value any
	// Present reports whether the reference resolved in Record.
	Present bool
	// Props are the extra properties declared on the column.
	Props map[string]any
}

// CellComponent renders the content of one cell. It runs inside the <td>.
type CellComponent func(props CellProps) core.Widget

// DefaultCell renders the formatted value in a <span>. Absent values render
// an empty span.
func DefaultCell(props CellProps) core.Widget {
	span := widgets.Tag{Name: "span"}
	if props.Present && props.Value != nil {
		span.Children = []core.Widget{widgets.Text{Content: FormatValue(props.Value)}}
	}
	return span
}

// Column is the descriptor extracted from a ColumnSpec. The reference is the
// column's identity; it must be unique within a table.
type Column struct {
	// Reference names the record field shown in this column.
	Reference string
	// Label is the heading. Empty means the reference is shown.
	Label string
	// Component renders cell content. Nil resolves to DefaultCell.
	Component CellComponent
	// Props are passed to Component with every record.
	Props map[string]any
	// CellClass is the class of each <td>.
	CellClass ClassSpec
	// Force makes cells in this column rebuild on every row rebuild.
	Force bool
}

// Heading returns the text shown in the column's header cell.
func (c Column) Heading() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Reference
}

func (c Column) component() CellComponent {
	if c.Component != nil {
		return c.Component
	}
	return DefaultCell
}
