package table

import (
	"golang.org/x/net/html"

	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/widgets"
)

// indicatorStyle separates the sort glyph from the heading text.
const indicatorStyle = "margin-left: 8px"

// HeaderCell is a clickable <th> for one column.
type HeaderCell struct {
	core.StatelessBase
	Column Column
	// Indicator is the glyph name, empty for unsorted columns.
	Indicator string
	// OnSort is invoked when the heading is clicked.
	OnSort func()
}

func (h HeaderCell) Key() any {
	return h.Column.Reference
}

func (h HeaderCell) Build(ctx core.BuildContext) core.Widget {
	indicator := widgets.Tag{Name: "span"}
	if h.Indicator != "" {
		indicator.Children = []core.Widget{widgets.Icon{Name: h.Indicator, Style: indicatorStyle}}
	}
	return widgets.Tag{
		Name:    "th",
		Attrs:   []html.Attribute{{Key: "data-reference", Val: h.Column.Reference}},
		OnClick: h.OnSort,
		Children: []core.Widget{
			widgets.Text{Content: h.Column.Heading()},
			indicator,
		},
	}
}
