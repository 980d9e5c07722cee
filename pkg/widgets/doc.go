// Package widgets provides the markup primitives that higher-level widgets
// build down to.
//
// Widgets are plain struct literals:
//
//	Tag{
//	    Name:    "th",
//	    Class:   "sortable",
//	    OnClick: handleClick,
//	    Children: []core.Widget{
//	        Text{Content: "Name"},
//	    },
//	}
//
// A few helpers exist for the common shapes: TagOf, TextOf and IconOf.
//
// Importing this package registers ErrorWidget as the fallback shown in place
// of widgets whose build panicked.
package widgets
