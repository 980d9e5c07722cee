package testing

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is where golden files live, relative to the test's package.
const GoldenDir = "testdata/golden"

// MatchesGolden compares the current markup against
// testdata/golden/<name>.golden.html. Run the tests with -update to rewrite
// the file.
func (t *WidgetTester) MatchesGolden(tb *testing.T, name string) {
	tb.Helper()
	markup, err := t.HTML()
	if err != nil {
		tb.Fatalf("render markup: %v", err)
	}
	AssertGolden(tb, name, []byte(markup))
}

// AssertGolden compares data against testdata/golden/<name>.golden.html.
func AssertGolden(tb *testing.T, name string, data []byte) {
	tb.Helper()
	g := goldie.New(tb,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden.html"),
	)
	g.Assert(tb, name, data)
}
