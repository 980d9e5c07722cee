package table

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/errors"
	dttest "github.com/go-drift/datatable/pkg/testing"
	"github.com/go-drift/datatable/pkg/widgets"
)

var peopleColumns = []core.Widget{
	ColumnSpec{Reference: "name", Label: "Name"},
	ColumnSpec{Reference: "age"},
}

func peopleTable() Table {
	return Table{ClassName: "people", Data: sample(), Children: peopleColumns}
}

func renderedNames(t *testing.T, tester *dttest.WidgetTester) []string {
	t.Helper()
	var out []string
	for _, row := range tester.Find(dttest.ByType[Row]()).All() {
		out = append(out, row.Widget().(Row).Record["name"].(string))
	}
	return out
}

func TestTableRendersInInputOrder(t *testing.T) {
	tester := dttest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(peopleTable()))

	assert.Equal(t, []string{"Bob", "Amy", "Cid"}, renderedNames(t, tester))
	tester.MatchesGolden(t, "people_unsorted")
}

func TestTableHeaderClickCycle(t *testing.T) {
	tester := dttest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(peopleTable()))
	age := dttest.ByAttr("data-reference", "age")

	require.NoError(t, tester.Tap(age))
	assert.Equal(t, []string{"Amy", "Cid", "Bob"}, renderedNames(t, tester))
	tester.MatchesGolden(t, "people_age_ascending")

	require.NoError(t, tester.Tap(age))
	assert.Equal(t, []string{"Bob", "Amy", "Cid"}, renderedNames(t, tester))
	assert.True(t, tester.Find(dttest.ByAttr("class", "fa fa-chevron-down")).Exists())

	require.NoError(t, tester.Tap(age))
	assert.Equal(t, []string{"Bob", "Amy", "Cid"}, renderedNames(t, tester))
	assert.False(t, tester.Find(dttest.ByType[widgets.Icon]()).Exists(), "unsorted tables show no indicator")
}

func TestTableClickOtherColumnRestartsAscending(t *testing.T) {
	tester := dttest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(peopleTable()))

	tester.Tap(dttest.ByAttr("data-reference", "age"))
	tester.Tap(dttest.ByAttr("data-reference", "age"))
	require.NoError(t, tester.Tap(dttest.ByAttr("data-reference", "name")))

	assert.Equal(t, []string{"Amy", "Bob", "Cid"}, renderedNames(t, tester))
	icons := tester.Find(dttest.ByType[widgets.Icon]())
	require.Equal(t, 1, icons.Count())
	assert.Equal(t, "chevron-up", icons.Widget().(widgets.Icon).Name)

	header := tester.Find(dttest.Ancestor(dttest.ByType[widgets.Icon](), dttest.ByType[HeaderCell]()))
	assert.Equal(t, "name", header.Widget().(HeaderCell).Column.Reference)
}

func TestTableOnSortAndController(t *testing.T) {
	var seen []string
	table := peopleTable()
	table.OnSort = func(order SortOrder) { seen = append(seen, order.String()) }

	tester := dttest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(table))

	controller, ok := ControllerOf(tester.RootElement())
	require.True(t, ok)
	require.Len(t, controller.Columns(), 2)
	assert.True(t, controller.SortOrder().IsEmpty())

	require.NoError(t, tester.Tap(dttest.ByAttr("data-reference", "age")))
	assert.True(t, controller.SortOrder().SortsBy("age"))

	tester.Dispatch(func() {
		assert.True(t, controller.Sort("age"))
		assert.False(t, controller.Sort("missing"))
	})
	require.NoError(t, tester.Pump())

	assert.Equal(t, []string{"age asc", "age desc"}, seen)
	assert.Equal(t, []string{"Bob", "Amy", "Cid"}, renderedNames(t, tester))
}

func TestControllerOfWithoutTable(t *testing.T) {
	_, ok := ControllerOf(nil)
	assert.False(t, ok)

	tester := dttest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(widgets.TagOf("p")))
	_, ok = ControllerOf(tester.RootElement())
	assert.False(t, ok)
}

func TestTableClasses(t *testing.T) {
	tester := dttest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(Table{
		ClassName: "people",
		RowClass:  FieldClass("status", "row-"),
		Data: []Record{
			{"name": "Bob", "status": "active"},
			{"name": "Amy"},
		},
		Children: []core.Widget{
			ColumnSpec{Reference: "name", CellClass: Literal("strong")},
			ColumnSpec{Reference: "status", CellClass: Computed(func(r Record) string {
				if r["status"] == nil {
					return "empty"
				}
				return ""
			})},
		},
	}))

	html, err := tester.HTML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(html, `<table class="people">`))
	assert.Contains(t, html, `<tr class="row-active"><td class="strong"><span>Bob</span></td><td><span>active</span></td></tr>`)
	assert.Contains(t, html, `<tr><td class="strong"><span>Amy</span></td><td class="empty"><span></span></td></tr>`)
}

func TestTableIgnoresNonColumnChildren(t *testing.T) {
	tester := dttest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(Table{
		Data:     sample(),
		Children: []core.Widget{widgets.TextOf("caption"), ColumnSpec{Reference: "name"}},
	}))

	assert.Equal(t, 1, tester.Find(dttest.ByType[HeaderCell]()).Count())
	assert.False(t, tester.Find(dttest.ByText("caption")).Exists())
}

func TestTableCustomCellProps(t *testing.T) {
	tester := dttest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(Table{
		Data: []Record{{"weight": 70}},
		Children: []core.Widget{
			ColumnSpec{
				Reference: "weight",
				Props:     map[string]any{"unit": "kg"},
				Component: func(props CellProps) core.Widget {
					return widgets.TextOf(FormatValue(props.Value) + " " + props.Props["unit"].(string))
				},
			},
		},
	}))

	assert.True(t, tester.Find(dttest.ByText("70 kg")).Exists())
}

func TestTableRederivesColumnsOnlyForNewChildren(t *testing.T) {
	tester := dttest.NewWidgetTesterWithT(t)
	table := peopleTable()
	require.NoError(t, tester.PumpWidget(table))

	controller, ok := ControllerOf(tester.RootElement())
	require.True(t, ok)
	first := controller.Columns()

	table.Data = append(sample(), Record{"name": "Dan", "age": 20})
	require.NoError(t, tester.PumpWidget(table))
	assert.Same(t, &first[0], &controller.Columns()[0], "same children keep the derived column model")

	table.Children = []core.Widget{ColumnSpec{Reference: "age", Label: "Age"}}
	require.NoError(t, tester.PumpWidget(table))
	require.Len(t, controller.Columns(), 1)
	assert.Equal(t, "Age", controller.Columns()[0].Heading())
	assert.True(t, tester.Find(dttest.ByText("Age")).Exists())
}

func TestTableSortSurvivesDataUpdates(t *testing.T) {
	tester := dttest.NewWidgetTesterWithT(t)
	table := peopleTable()
	require.NoError(t, tester.PumpWidget(table))
	require.NoError(t, tester.Tap(dttest.ByAttr("data-reference", "age")))

	table.Data = append(sample(), Record{"name": "Dan", "age": 20})
	require.NoError(t, tester.PumpWidget(table))
	assert.Equal(t, []string{"Dan", "Amy", "Cid", "Bob"}, renderedNames(t, tester))
}

func TestRenderingColumnSpecFails(t *testing.T) {
	var logs bytes.Buffer
	old := errors.DefaultHandler
	errors.SetHandler(&errors.LogHandler{Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	defer errors.SetHandler(old)

	tester := dttest.NewWidgetTesterWithT(t)
	err := tester.PumpWidget(widgets.TagOf("div", ColumnSpec{Reference: "age"}))
	require.Error(t, err)

	usage, ok := errors.AsUsage(err)
	require.True(t, ok)
	assert.Equal(t, errors.KindInvalidUse, usage.Kind)
	assert.Contains(t, logs.String(), "widget=table.ColumnSpec")
}

func TestDuplicateReferencesFailFast(t *testing.T) {
	old := errors.DefaultHandler
	errors.SetHandler(&errors.LogHandler{Logger: slog.New(slog.DiscardHandler)})
	defer errors.SetHandler(old)

	tester := dttest.NewWidgetTesterWithT(t)
	err := tester.PumpWidget(Table{
		Data:     sample(),
		Children: []core.Widget{ColumnSpec{Reference: "age"}, ColumnSpec{Reference: "age"}},
	})
	usage, ok := errors.AsUsage(err)
	require.True(t, ok, "expected a usage error, got %v", err)
	assert.Equal(t, errors.KindConfig, usage.Kind)
}

func TestDeriveView(t *testing.T) {
	columns, err := DeriveColumns(peopleColumns)
	require.NoError(t, err)

	view := DeriveView(columns, sample(), Sorted(ageColumn, false), nil)
	require.Len(t, view.Headers, 2)
	assert.Equal(t, "Name", view.Headers[0].Label)
	assert.Equal(t, "", view.Headers[0].Indicator)
	assert.Equal(t, "age", view.Headers[1].Label)
	assert.Equal(t, "chevron-down", view.Headers[1].Indicator)
	assert.Equal(t, []string{"Bob", "Amy", "Cid"}, names(view.Records()))
	for i, row := range view.Rows {
		assert.Equal(t, i, row.Index)
	}

	empty := DeriveView(nil, nil, SortOrder{}, nil)
	assert.Empty(t, empty.Headers)
	assert.Empty(t, empty.Rows)
}

func TestTableSortsNamedBoolColumn(t *testing.T) {
	tester := dttest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(Table{
		Data: []Record{
			{"name": "Bob", "ok": flag(true)},
			{"name": "Amy", "ok": flag(false)},
		},
		Children: []core.Widget{
			ColumnSpec{Reference: "name"},
			ColumnSpec{Reference: "ok"},
		},
	}))

	require.NoError(t, tester.Tap(dttest.ByAttr("data-reference", "ok")))
	assert.Equal(t, []string{"Amy", "Bob"}, renderedNames(t, tester))
	html, err := tester.HTML()
	require.NoError(t, err)
	assert.NotContains(t, html, "datatable-error")
	assert.Contains(t, html, "fa-chevron-up")
}
