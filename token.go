package jjview

// Token is a run of source text with a visual style, produced by a Tokenizer
// for syntax-highlighted previews.
type Token struct {
	Text  string
	Style Style
}

// Style describes how a token should be rendered.
type Style struct {
	Foreground string // hex color, empty for default
	Bold       bool
}

// Tokenizer splits source code into styled tokens for a language.
type Tokenizer interface {
	// TokenizeLines returns the styled tokens of each source line, without
	// terminators, or nil if the language is not supported. Tokens of
	// multi-line constructs are split at line boundaries so every line
	// carries its styling.
	TokenizeLines(language, source string) [][]Token
}

// LanguageDetector maps a file path to a language name a Tokenizer accepts.
type LanguageDetector interface {
	DetectFromPath(path string) string
}
