package widgets

import (
	"github.com/go-drift/datatable/pkg/core"
)

// Icon names a glyph from an icon font. Drawing the glyph is left to the
// stylesheet; the widget only emits <i class="fa fa-NAME">.
type Icon struct {
	core.StatelessBase
	// Name is the glyph name without the "fa-" prefix, e.g. "chevron-up".
	Name string
	// Style is written as the inline style attribute when non-empty.
	Style string
}

// IconOf creates an icon with the given glyph name.
// This is a convenience helper equivalent to:
//
//	Icon{Name: name}
func IconOf(name string) Icon {
	return Icon{Name: name}
}

func (i Icon) Build(ctx core.BuildContext) core.Widget {
	tag := Tag{Name: "i", Class: "fa fa-" + i.Name}
	if i.Style != "" {
		tag = tag.WithAttr("style", i.Style)
	}
	return tag
}
