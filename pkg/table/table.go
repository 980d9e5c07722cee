package table

import (
	"golang.org/x/text/collate"

	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/widgets"
)

// Table renders records as a sortable HTML table. Columns are declared by
// the ColumnSpec children.
type Table struct {
	core.StatefulBase

	// Data is the records to show, in input order. Required.
	Data []Record
	// ClassName is the class of the <table> element.
	ClassName string
	// RowClass is the class of each <tr>, resolved per record.
	RowClass ClassSpec
	// Children declare the columns. Children that are not Describers are
	// ignored. The column model is re-derived only when a different
	// children slice is passed.
	Children []core.Widget
	// Collator orders string values. Nil compares bytes.
	Collator *collate.Collator
	// OnSort is called with the new order after each header click.
	OnSort func(SortOrder)
}

func (t Table) CreateState() core.State {
	return &tableState{}
}

// Controller is implemented by the state of a mounted Table.
type Controller interface {
	// Columns returns the derived column model.
	Columns() []Column
	// SortOrder returns the current sort order.
	SortOrder() SortOrder
	// Sort applies a header click on the column with reference. It reports
	// false when no such column exists.
	Sort(reference string) bool
}

// ControllerOf returns the controller of the first Table at or below element.
func ControllerOf(element core.Element) (Controller, bool) {
	if element == nil {
		return nil, false
	}
	if stateful, ok := element.(*core.StatefulElement); ok {
		if controller, ok := stateful.State().(Controller); ok {
			return controller, true
		}
	}
	var found Controller
	element.VisitChildren(func(child core.Element) bool {
		if controller, ok := ControllerOf(child); ok {
			found = controller
			return false
		}
		return true
	})
	return found, found != nil
}

type tableState struct {
	core.StateBase
	order    *core.Managed[SortOrder]
	children []core.Widget
	columns  []Column
	err      error
}

func (s *tableState) table() Table {
	return s.Widget().(Table)
}

func (s *tableState) InitState() {
	s.order = core.NewManaged(s, SortOrder{})
	s.deriveColumns(s.table().Children)
}

func (s *tableState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	children := s.table().Children
	if !sameChildren(s.children, children) {
		s.deriveColumns(children)
	}
}

func (s *tableState) deriveColumns(children []core.Widget) {
	s.children = children
	s.columns, s.err = DeriveColumns(children)
}

// sameChildren reports whether two children slices are the same declaration.
func sameChildren(a, b []core.Widget) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

func (s *tableState) Columns() []Column {
	return s.columns
}

func (s *tableState) SortOrder() SortOrder {
	return s.order.Value()
}

func (s *tableState) Sort(reference string) bool {
	for _, column := range s.columns {
		if column.Reference == reference {
			s.sort(column)
			return true
		}
	}
	return false
}

func (s *tableState) sort(column Column) {
	s.order.Update(func(order SortOrder) SortOrder {
		return order.Next(column)
	})
	if onSort := s.table().OnSort; onSort != nil {
		onSort(s.order.Value())
	}
}

func (s *tableState) Build(ctx core.BuildContext) core.Widget {
	if s.err != nil {
		panic(s.err)
	}
	t := s.table()
	view := DeriveView(s.columns, t.Data, s.order.Value(), t.Collator)

	headers := make([]core.Widget, len(view.Headers))
	for i, header := range view.Headers {
		headers[i] = HeaderCell{
			Column:    header.Column,
			Indicator: header.Indicator,
			OnSort:    func() { s.sort(header.Column) },
		}
	}
	rows := make([]core.Widget, len(view.Rows))
	for i, row := range view.Rows {
		rows[i] = Row{
			Index:    row.Index,
			Record:   row.Record,
			Columns:  s.columns,
			RowClass: t.RowClass,
		}
	}

	return widgets.Tag{
		Name:  "table",
		Class: t.ClassName,
		Children: []core.Widget{
			widgets.TagOf("thead", widgets.TagOf("tr", headers...)),
			widgets.TagOf("tbody", rows...),
		},
	}
}
