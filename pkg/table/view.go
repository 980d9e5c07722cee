package table

import "golang.org/x/text/collate"

// View is the render model of a table for one state: what the header shows
// and which records appear in which order.
type View struct {
	Columns []Column
	Headers []HeaderView
	Rows    []RowView
}

// HeaderView is one heading.
type HeaderView struct {
	Column    Column
	Label     string
	Indicator string
}

// RowView is one body row in display order.
type RowView struct {
	Index  int
	Record Record
}

// DeriveView computes the view model from the column model, the caller's
// data and the current sort order. It has no side effects.
func DeriveView(columns []Column, data []Record, order SortOrder, collator *collate.Collator) View {
	headers := make([]HeaderView, len(columns))
	for i, column := range columns {
		headers[i] = HeaderView{
			Column:    column,
			Label:     column.Heading(),
			Indicator: order.Indicator(column),
		}
	}
	records := DisplayOrder(data, order, collator)
	rows := make([]RowView, len(records))
	for i, record := range records {
		rows[i] = RowView{Index: i, Record: record}
	}
	return View{Columns: columns, Headers: headers, Rows: rows}
}

// Records returns the records of the view in display order.
func (v View) Records() []Record {
	records := make([]Record, len(v.Rows))
	for i, row := range v.Rows {
		records[i] = row.Record
	}
	return records
}
