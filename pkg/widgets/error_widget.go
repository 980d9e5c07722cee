package widgets

import (
	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/errors"
)

func init() {
	core.SetErrorWidgetBuilder(func(err *errors.BoundaryError) core.Widget {
		return ErrorWidget{Error: err}
	})
}

// ErrorWidget is shown in place of a widget whose build failed.
type ErrorWidget struct {
	core.StatelessBase
	// Error is the build error that occurred.
	Error *errors.BoundaryError
	// Verbose includes the error message in the markup.
	Verbose bool
}

func (e ErrorWidget) Build(ctx core.BuildContext) core.Widget {
	text := "!"
	if e.Verbose && e.Error != nil {
		text = e.Error.Error()
	}
	return Tag{
		Name:     "span",
		Class:    "datatable-error",
		Children: []core.Widget{Text{Content: text}},
	}
}
