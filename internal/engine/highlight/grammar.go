package highlight

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidGrammar is returned when a grammar fails validation.
var ErrInvalidGrammar = errors.New("invalid grammar")

// DefaultOperators is a punctuation set suitable for most programming
// languages. Grammars opt in; an empty Operators field means none.
const DefaultOperators = "+-*/%=<>!&|^~?:;,.(){}[]"

// StringRule describes one string literal form.
type StringRule struct {
	// Delimiter opens and closes the literal.
	Delimiter string `yaml:"delimiter"`

	// Escape is the escape prefix inside the literal, usually "\\".
	// Empty means no escapes.
	Escape string `yaml:"escape,omitempty"`

	// Multiline literals may span line boundaries; an unterminated
	// single-line literal runs to end of line and the scanner returns
	// to normal state.
	Multiline bool `yaml:"multiline,omitempty"`
}

// Grammar is a data-only language description. Grammars load from YAML
// or are declared as literals; the scanner interprets them, so every
// language shares one engine.
type Grammar struct {
	// Name identifies the language, e.g. "go".
	Name string `yaml:"name"`

	// Extensions are file extensions with leading dot, e.g. ".go".
	Extensions []string `yaml:"extensions,omitempty"`

	// Keywords are matched against whole identifiers.
	Keywords []string `yaml:"keywords,omitempty"`

	// LineComments are markers that comment to end of line.
	LineComments []string `yaml:"line_comments,omitempty"`

	// BlockCommentOpen and BlockCommentClose delimit comments that may
	// span lines. Both must be set or both empty.
	BlockCommentOpen  string `yaml:"block_comment_open,omitempty"`
	BlockCommentClose string `yaml:"block_comment_close,omitempty"`

	// Strings lists the string literal forms.
	Strings []StringRule `yaml:"strings,omitempty"`

	// Numbers enables numeric literal recognition.
	Numbers bool `yaml:"numbers,omitempty"`

	// Operators is the operator character set, empty for none.
	// DefaultOperators covers most languages.
	Operators string `yaml:"operators,omitempty"`

	// Compiled lookups, built once by compile.
	keywordSet  map[string]struct{}
	operatorSet map[rune]struct{}
}

// compile validates the grammar and builds its lookup sets.
func (g *Grammar) compile() error {
	if g.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidGrammar)
	}
	if (g.BlockCommentOpen == "") != (g.BlockCommentClose == "") {
		return fmt.Errorf("%w: block comment needs both open and close", ErrInvalidGrammar)
	}
	for _, m := range g.LineComments {
		if m == "" {
			return fmt.Errorf("%w: empty line comment marker", ErrInvalidGrammar)
		}
	}
	for i, s := range g.Strings {
		if s.Delimiter == "" {
			return fmt.Errorf("%w: string rule %d has no delimiter", ErrInvalidGrammar, i)
		}
	}
	for _, ext := range g.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: extension %q must start with a dot", ErrInvalidGrammar, ext)
		}
	}

	g.keywordSet = make(map[string]struct{}, len(g.Keywords))
	for _, kw := range g.Keywords {
		if kw == "" {
			return fmt.Errorf("%w: empty keyword", ErrInvalidGrammar)
		}
		g.keywordSet[kw] = struct{}{}
	}

	g.operatorSet = make(map[rune]struct{}, len(g.Operators))
	for _, r := range g.Operators {
		g.operatorSet[r] = struct{}{}
	}

	return nil
}

// isKeyword reports whether word is in the grammar's keyword set.
func (g *Grammar) isKeyword(word string) bool {
	_, ok := g.keywordSet[word]
	return ok
}

// isOperator reports whether r is in the grammar's operator set.
func (g *Grammar) isOperator(r rune) bool {
	_, ok := g.operatorSet[r]
	return ok
}

// LoadGrammar parses a YAML grammar description and validates it.
func LoadGrammar(data []byte) (*Grammar, error) {
	var g Grammar
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrammar, err)
	}
	if err := g.compile(); err != nil {
		return nil, err
	}
	return &g, nil
}

// LoadGrammarFile reads and parses a YAML grammar file.
func LoadGrammarFile(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar %s: %w", path, err)
	}
	g, err := LoadGrammar(data)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", path, err)
	}
	return g, nil
}

// mustGrammar compiles a builtin grammar literal, panicking on error.
// Builtins are validated by tests, so a panic here is a programming
// mistake, not a runtime condition.
func mustGrammar(g Grammar) *Grammar {
	if err := g.compile(); err != nil {
		panic(err)
	}
	return &g
}
