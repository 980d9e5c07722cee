package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/widgets"
)

// Finder locates elements in the widget tree.
type Finder interface {
	// Evaluate returns the matching elements under root, depth-first pre-order.
	Evaluate(root core.Element) []core.Element
	// Description names the finder in failure messages.
	Description() string
}

// FinderResult wraps the elements a finder matched.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if nothing matched.
func (r FinderResult) First() core.Element {
	return r.At(0)
}

// FirstOrNil returns the first match, or nil.
func (r FinderResult) FirstOrNil() core.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) core.Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("finder matched no elements: %s", r.describe()))
	}
	if index < 0 || index >= len(r.elements) {
		panic(fmt.Sprintf("finder index %d out of range (matched %d): %s", index, len(r.elements), r.describe()))
	}
	return r.elements[index]
}

// All returns every match in traversal order.
func (r FinderResult) All() []core.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists reports whether anything matched.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

// Widget returns the widget of the first match. Panics if nothing matched.
func (r FinderResult) Widget() core.Widget {
	return r.First().Widget()
}

// matcher is a Finder driven by a per-element predicate.
type matcher struct {
	desc  string
	match func(core.Element) bool
}

func (m matcher) Evaluate(root core.Element) []core.Element {
	var found []core.Element
	walkTree(root, func(e core.Element) bool {
		if m.match(e) {
			found = append(found, e)
		}
		return true
	})
	return found
}

func (m matcher) Description() string {
	return m.desc
}

// matchWidget builds a matcher for widgets of type W.
func matchWidget[W core.Widget](desc string, match func(W) bool) Finder {
	return matcher{desc: desc, match: func(e core.Element) bool {
		w, ok := e.Widget().(W)
		return ok && match(w)
	}}
}

// ByType matches elements whose widget is exactly type T.
func ByType[T core.Widget]() Finder {
	typ := reflect.TypeFor[T]()
	return matcher{
		desc:  fmt.Sprintf("ByType(%s)", typ),
		match: func(e core.Element) bool { return reflect.TypeOf(e.Widget()) == typ },
	}
}

// ByKey matches elements whose widget key equals key.
func ByKey(key any) Finder {
	return matcher{
		desc:  fmt.Sprintf("ByKey(%v)", key),
		match: func(e core.Element) bool { return reflect.DeepEqual(e.Widget().Key(), key) },
	}
}

// ByText matches [widgets.Text] with exactly this content.
func ByText(text string) Finder {
	return matchWidget(fmt.Sprintf("ByText(%q)", text), func(t widgets.Text) bool {
		return t.Content == text
	})
}

// ByTextContaining matches [widgets.Text] whose content contains substring.
func ByTextContaining(substring string) Finder {
	return matchWidget(fmt.Sprintf("ByTextContaining(%q)", substring), func(t widgets.Text) bool {
		return strings.Contains(t.Content, substring)
	})
}

// ByTag matches [widgets.Tag] elements named name, such as "th" or "tr".
func ByTag(name string) Finder {
	return matchWidget(fmt.Sprintf("ByTag(%q)", name), func(t widgets.Tag) bool {
		return t.Name == name
	})
}

// ByAttr matches [widgets.Tag] elements whose attribute key equals value.
// The key "class" matches the tag's class.
func ByAttr(key, value string) Finder {
	return matchWidget(fmt.Sprintf("ByAttr(%s=%q)", key, value), func(t widgets.Tag) bool {
		return t.Attr(key) == value
	})
}

// ByPredicate matches elements satisfying fn.
func ByPredicate(fn func(core.Element) bool) Finder {
	return matcher{desc: "ByPredicate(...)", match: fn}
}

// relation combines two finders: anchors found by of, then candidates found
// by matching that stand in some relation to an anchor.
type relation struct {
	name     string
	of       Finder
	matching Finder
	related  func(candidate, anchor core.Element) bool
}

func (r relation) Evaluate(root core.Element) []core.Element {
	anchors := r.of.Evaluate(root)
	if len(anchors) == 0 {
		return nil
	}
	var found []core.Element
	for _, candidate := range r.matching.Evaluate(root) {
		for _, anchor := range anchors {
			if candidate != anchor && r.related(candidate, anchor) {
				found = append(found, candidate)
				break
			}
		}
	}
	return found
}

func (r relation) Description() string {
	return fmt.Sprintf("%s(of: %s, matching: %s)", r.name, r.of.Description(), r.matching.Description())
}

// Descendant matches elements satisfying matching that sit below an
// element matching of.
func Descendant(of, matching Finder) Finder {
	return relation{name: "Descendant", of: of, matching: matching, related: isBelow}
}

// Ancestor matches elements satisfying matching that sit above an element
// matching of.
func Ancestor(of, matching Finder) Finder {
	return relation{name: "Ancestor", of: of, matching: matching, related: func(candidate, anchor core.Element) bool {
		return isBelow(anchor, candidate)
	}}
}

// isBelow reports whether element has ancestor above it.
func isBelow(element, ancestor core.Element) bool {
	return element.FindAncestor(func(e core.Element) bool { return e == ancestor }) != nil
}

// walkTree visits root and its descendants depth-first, pre-order. The
// visitor returns false to stop the whole traversal.
func walkTree(root core.Element, visitor func(core.Element) bool) bool {
	if !visitor(root) {
		return false
	}
	keepGoing := true
	root.VisitChildren(func(child core.Element) bool {
		keepGoing = walkTree(child, visitor)
		return keepGoing
	})
	return keepGoing
}
