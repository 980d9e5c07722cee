// Package testing provides a widget testing harness for datatable widgets.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestPeople(t *testing.T) {
//	    tester := dttest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(table.Table{Data: people, Children: columns})
//
//	    // Click a heading and flush the rebuild
//	    tester.Tap(dttest.ByAttr("data-reference", "age"))
//
//	    if !tester.Find(dttest.ByText("Amy")).Exists() {
//	        t.Error("expected Amy to be listed")
//	    }
//	}
//
// Pumping a widget of the same type and key as the mounted root updates it
// in place, as a parent rebuild would, so update-skip behavior can be
// observed across pumps.
//
// # Snapshot Testing
//
// Compare the rendered markup against a golden file under testdata/:
//
//	tester.MatchesGolden(t, "people_sorted")
//
// Update golden files with:
//
//	go test ./... -update
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import dttest "github.com/go-drift/datatable/pkg/testing"
package testing
