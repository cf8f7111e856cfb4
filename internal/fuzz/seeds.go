package fuzztests

import (
	"os"
	"path/filepath"
	"testing"
)

// maxFuzzInput bounds a single input; longer ones are cut.
const maxFuzzInput = 64 << 10

var languageSeeds = []string{
	"",
	"fn main() { 0 }",
	"mod util;\npub mod net;\nfn main() { util::run(1, 2) }",
	"fn id<T>(x: T) -> T { x }",
	"fn f(a: Int, b: Int) -> Int where Int: Add { a + b * 2 - 3 / 4 ^ 5 }",
	"fn g() { if a { 1 } elseif !c { 2 } else { 3 } }",
	"fn h() { f(g(1), \"s\\n\", 3.5, true); x }",
	"trait Show { type Out; fn show(self: Self) -> String; }",
	"trait Eq<T> where T: Show { fn eq(a: T, b: T) -> Bool { a - b } }",
	"impl<T> Show for Vec<T> where T: Show { type Out = String; fn show(self: Self) -> String { \"\" } }",
	"impl Point { fn new() -> Point { Point::origin() } }",
	"fn deep() { ((((((1)))))) }",
	"fn ops() { !!a(b)(c) ^ d ^ e - f - g }",
	"// comment\n/* block */ fn c() { 0 }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every .lm file found under the packages' testdata dirs.
func addTestdataSeeds(f *testing.F) {
	matches, err := filepath.Glob(filepath.Join("..", "*", "testdata", "*", "*.lm"))
	if err != nil {
		return
	}
	for _, path := range matches {
		// #nosec G304 -- path comes from repository testdata
		src, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f.Add(clamp(src))
	}
}

func clamp(src []byte) []byte {
	if len(src) <= maxFuzzInput {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxFuzzInput]...)
}
