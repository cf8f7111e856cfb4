package fuzztests

import (
	"testing"

	"lumen/internal/lexer"
	"lumen/internal/source"
	"lumen/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file, err := fs.Load(fs.AddVirtual("fuzz.lm", clamp(input)))
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		lx := lexer.New(file, lexer.Options{})
		// каждый токен потребляет хотя бы один байт
		for i := 0; i <= len(file.Content)+1; i++ {
			if lx.Next().Kind == token.EOF {
				return
			}
		}
		t.Fatalf("lexer did not reach EOF on %q", input)
	})
}
