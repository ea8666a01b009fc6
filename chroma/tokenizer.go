// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	jjview "github.com/brychanrobot/jjview"
)

// Compile-time interface verification.
var (
	_ jjview.Tokenizer        = (*Tokenizer)(nil)
	_ jjview.LanguageDetector = (*Detector)(nil)
)

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct{}

// NewTokenizer creates a new chroma-based tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits source code into styled tokens for the given language.
// Returns nil if the language is not supported or an error occurs.
// Returns an empty slice for empty source (valid input, no tokens).
func (t *Tokenizer) Tokenize(language, source string) []jjview.Token {
	if source == "" {
		return []jjview.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}

	// Coalesce merges consecutive tokens of the same type.
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var tokens []jjview.Token
	for token := iterator(); token != chroma.EOF; token = iterator() {
		tokens = append(tokens, jjview.Token{
			Text:  token.Value,
			Style: tokenStyle(token.Type),
		})
	}

	return tokens
}

// TokenizeLines tokenizes source and splits the result at line boundaries,
// so multi-line constructs (block comments, raw strings) keep their styling
// on every line. Index i holds the tokens of line i, without terminators.
func (t *Tokenizer) TokenizeLines(language, source string) [][]jjview.Token {
	if source == "" {
		return nil
	}
	tokens := t.Tokenize(language, source)
	if tokens == nil {
		return nil
	}

	lines := [][]jjview.Token{{}}
	for _, tok := range tokens {
		parts := strings.Split(tok.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, []jjview.Token{})
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], jjview.Token{Text: part, Style: tok.Style})
		}
	}
	// Chroma emits a trailing newline token for the final line; drop the
	// empty line it opens.
	if len(lines) > 1 && len(lines[len(lines)-1]) == 0 && strings.HasSuffix(source, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// tokenStyle returns the visual style for a chroma token category.
// Colors are loosely based on the One Dark theme.
func tokenStyle(tt chroma.TokenType) jjview.Style {
	switch {
	case tt.InCategory(chroma.Keyword):
		return jjview.Style{Foreground: "#c678dd", Bold: true}
	case tt.InCategory(chroma.Comment):
		return jjview.Style{Foreground: "#5c6370"}
	case tt.InSubCategory(chroma.LiteralString):
		return jjview.Style{Foreground: "#98c379"}
	case tt.InSubCategory(chroma.LiteralNumber):
		return jjview.Style{Foreground: "#d19a66"}
	case tt.InCategory(chroma.Operator):
		return jjview.Style{Foreground: "#56b6c2"}
	case tt == chroma.NameBuiltin || tt == chroma.NameBuiltinPseudo:
		return jjview.Style{Foreground: "#e5c07b"}
	case tt == chroma.NameFunction || tt == chroma.NameFunctionMagic:
		return jjview.Style{Foreground: "#61afef"}
	case tt.InCategory(chroma.Name):
		return jjview.Style{Foreground: "#e06c75"}
	default:
		return jjview.Style{}
	}
}

// Detector maps file paths to chroma language names.
type Detector struct{}

// NewDetector creates a path-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the language for a file path, or empty when chroma
// has no lexer for it.
func (d *Detector) DetectFromPath(path string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return strings.ToLower(lexer.Config().Name)
}
