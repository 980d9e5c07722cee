package widgets_test

import (
	"testing"

	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/errors"
	dttest "github.com/go-drift/datatable/pkg/testing"
	"github.com/go-drift/datatable/pkg/widgets"
)

func render(t *testing.T, widget core.Widget) string {
	t.Helper()
	tester := dttest.NewWidgetTesterWithT(t)
	if err := tester.PumpWidget(widget); err != nil {
		t.Fatalf("PumpWidget: %v", err)
	}
	got, err := tester.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	return got
}

func TestTagMarkup(t *testing.T) {
	tag := widgets.TagOf("td", widgets.TextOf("x & y")).
		WithClass("num").
		WithAttr("data-reference", "age").
		WithAttr("title", `"quoted"`)

	got := render(t, tag)
	want := `<td class="num" data-reference="age" title="&#34;quoted&#34;">x &amp; y</td>`
	if got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
}

func TestTagWithAttrDoesNotShareAttrs(t *testing.T) {
	base := widgets.Tag{Name: "th"}.WithAttr("a", "1")
	left := base.WithAttr("b", "2")
	right := base.WithAttr("c", "3")

	if left.Attr("b") != "2" || left.Attr("c") != "" {
		t.Errorf("left attrs = %v", left.Attrs)
	}
	if right.Attr("c") != "3" || right.Attr("b") != "" {
		t.Errorf("right attrs = %v", right.Attrs)
	}
	if base.Attr("missing") != "" {
		t.Error("missing attribute should be empty")
	}
	if got := base.WithClass("sorted").Attr("class"); got != "sorted" {
		t.Errorf("Attr(class) = %q", got)
	}
}

func TestTagClick(t *testing.T) {
	clicks := 0
	tag := widgets.Tag{Name: "th", OnClick: func() { clicks++ }}
	if !tag.Click() || clicks != 1 {
		t.Errorf("Click() should invoke the handler, clicks = %d", clicks)
	}
	if (widgets.Tag{Name: "th"}).Click() {
		t.Error("Click() without a handler should report false")
	}
}

func TestTagUpdatesNodeInPlace(t *testing.T) {
	tester := dttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.TagOf("span", widgets.TextOf("a")).WithClass("old"))
	before := tester.RootElement().Node()

	tester.PumpWidget(widgets.TagOf("span", widgets.TextOf("b")))
	after := tester.RootElement().Node()
	if before != after {
		t.Error("expected the node to be reused")
	}
	got, _ := tester.HTML()
	if got != "<span>b</span>" {
		t.Errorf("markup = %q", got)
	}
}

func TestIconMarkup(t *testing.T) {
	if got := render(t, widgets.IconOf("chevron-up")); got != `<i class="fa fa-chevron-up"></i>` {
		t.Errorf("markup = %q", got)
	}
	styled := widgets.Icon{Name: "chevron-down", Style: "margin-left: 8px"}
	if got := render(t, styled); got != `<i class="fa fa-chevron-down" style="margin-left: 8px"></i>` {
		t.Errorf("markup = %q", got)
	}
}

type exploding struct {
	core.StatelessBase
}

func (exploding) Build(core.BuildContext) core.Widget {
	panic("boom")
}

func TestErrorWidgetReplacesFailedBuild(t *testing.T) {
	old := errors.DefaultHandler
	errors.SetHandler(discard{})
	defer errors.SetHandler(old)

	got := render(t, widgets.TagOf("td", exploding{}))
	if got != `<td><span class="datatable-error">!</span></td>` {
		t.Errorf("markup = %q", got)
	}
}

func TestErrorWidgetVerbose(t *testing.T) {
	err := &errors.BoundaryError{Phase: "build", Widget: "x", Recovered: "boom"}
	got := render(t, widgets.ErrorWidget{Error: err, Verbose: true})
	if got != `<span class="datatable-error">panic during build of x: boom</span>` {
		t.Errorf("markup = %q", got)
	}
}

type discard struct{}

func (discard) HandleError(*errors.TableError)            {}
func (discard) HandlePanic(*errors.PanicError)            {}
func (discard) HandleBoundaryError(*errors.BoundaryError) {}
