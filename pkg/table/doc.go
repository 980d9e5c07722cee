// Package table implements a declarative, sortable data table widget.
//
// Columns are declared as ColumnSpec children of a Table. The table derives
// its column model from those children once per distinct declaration, owns
// a tri-state sort order driven by header clicks, and renders rows and cells
// that skip rebuilding when their inputs have not changed:
//
//	table.Table{
//	    Data:      people,
//	    ClassName: "people",
//	    RowClass:  table.Computed(func(r table.Record) string { return r["status"].(string) }),
//	    Children: []core.Widget{
//	        table.ColumnSpec{Reference: "name", Label: "Name"},
//	        table.ColumnSpec{Reference: "age", Force: true},
//	    },
//	}
//
// # Sorting
//
// Clicking a heading cycles that column through ascending, descending and
// unsorted. Clicking another column starts it at ascending. Sorting is
// stable, so rows with equal values keep their input order.
//
// # Skipping Rebuilds
//
// A Row rebuilds only when its record is not deep-equal to the previous one.
// A Cell rebuilds only when the single field it displays changed, unless its
// column sets Force. The two checks are deliberately different: a row can
// rebuild while most of its cells are skipped.
//
// The pure pieces (SortOrder.Next, DisplayOrder, DeriveColumns, DeriveView,
// RowNeedsUpdate, CellNeedsUpdate) need no runtime and can be used directly.
package table
