package table

import (
	"reflect"

	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/widgets"
)

// Row renders one record as a <tr> with one Cell per column.
type Row struct {
	core.StatelessBase
	// Index is the record's position in display order and the row's key.
	Index    int
	Record   Record
	Columns  []Column
	RowClass ClassSpec
}

func (r Row) Key() any {
	return r.Index
}

// ShouldRebuild implements core.ShouldRebuilder using RowNeedsUpdate. Only the
// record is compared.
func (r Row) ShouldRebuild(oldWidget core.Widget) bool {
	old, ok := oldWidget.(Row)
	if !ok {
		return true
	}
	return RowNeedsUpdate(old.Record, r.Record)
}

func (r Row) Build(ctx core.BuildContext) core.Widget {
	cells := make([]core.Widget, len(r.Columns))
	for i, column := range r.Columns {
		cells[i] = Cell{Record: r.Record, Column: column}
	}
	return widgets.Tag{
		Name:     "tr",
		Class:    r.RowClass.Resolve(r.Record),
		Children: cells,
	}
}

// RowNeedsUpdate reports whether a row must rebuild when its record changes
// from prev to next. Deep-equal records never rebuild, whatever their
// identity.
func RowNeedsUpdate(prev, next Record) bool {
	return !reflect.DeepEqual(prev, next)
}
