package table

import (
	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/widgets"
)

// Cell renders one column of one record as a <td>.
type Cell struct {
	core.StatelessBase
	Record Record
	Column Column
}

// Key identifies the cell by its column reference.
func (c Cell) Key() any {
	return c.Column.Reference
}

// ShouldRebuild implements core.ShouldRebuilder using CellNeedsUpdate.
func (c Cell) ShouldRebuild(oldWidget core.Widget) bool {
	old, ok := oldWidget.(Cell)
	if !ok {
		return true
	}
	return CellNeedsUpdate(old.Record, c.Record, c.Column)
}

func (c Cell) Build(ctx core.BuildContext) core.Widget {
	value, present := Lookup(c.Record, c.Column.Reference)
	return widgets.Tag{
		Name:  "td",
		Class: c.Column.CellClass.Resolve(c.Record),
		Children: []core.Widget{
			c.Column.component()(CellProps{
				Record:  c.Record,
				Value:   value,
				Present: present,
				Props:   c.Column.Props,
			}),
		},
	}
}

// CellNeedsUpdate reports whether a cell of column must rebuild when its
// record changes from prev to next. Forced columns always rebuild; other
// columns compare only the referenced field, shallowly.
func CellNeedsUpdate(prev, next Record, column Column) bool {
	if column.Force {
		return true
	}
	before, _ := Lookup(prev, column.Reference)
	after, _ := Lookup(next, column.Reference)
	return !sameValue(before, after)
}
