package engine

import (
	"fmt"
	"reflect"

	"github.com/go-drift/datatable/pkg/core"
)

// maxTreeDepth limits recursion depth when serializing malformed trees.
const maxTreeDepth = 500

// WidgetTreeNode represents a node in the serialized widget/element tree.
type WidgetTreeNode struct {
	WidgetType  string           `json:"widgetType"`
	ElementType string           `json:"elementType"`
	Key         any              `json:"key,omitempty"`
	Depth       int              `json:"depth"`
	Builds      int              `json:"builds"`
	HasState    bool             `json:"hasState,omitempty"`
	Children    []WidgetTreeNode `json:"children,omitempty"`
}

// WidgetTree returns the serialized element tree, or nil when nothing is
// mounted.
func (e *Engine) WidgetTree() *WidgetTreeNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.root == nil {
		return nil
	}
	tree := serializeWidgetTree(e.root, 0)
	return &tree
}

func serializeWidgetTree(elem core.Element, depth int) WidgetTreeNode {
	if elem == nil {
		return WidgetTreeNode{ElementType: "<nil>"}
	}

	node := WidgetTreeNode{
		ElementType: reflect.TypeOf(elem).String(),
		Depth:       elem.Depth(),
		Builds:      buildCount(elem),
	}
	if widget := elem.Widget(); widget != nil {
		node.WidgetType = reflect.TypeOf(widget).String()
		node.Key = safeKey(widget.Key())
	}
	if _, ok := elem.(*core.StatefulElement); ok {
		node.HasState = true
	}

	if depth < maxTreeDepth {
		elem.VisitChildren(func(child core.Element) bool {
			node.Children = append(node.Children, serializeWidgetTree(child, depth+1))
			return true
		})
	}
	return node
}

// safeKey converts a widget key to a JSON-safe value.
func safeKey(key any) any {
	if key == nil {
		return nil
	}
	switch key.(type) {
	case string, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, bool:
		return key
	default:
		return fmt.Sprintf("%v", key)
	}
}

func buildCount(elem core.Element) int {
	if counter, ok := elem.(interface{ BuildCount() int }); ok {
		return counter.BuildCount()
	}
	return 0
}
