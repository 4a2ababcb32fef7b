package highlight

// Builtin grammars. These are ordinary data grammars, identical in
// shape to what LoadGrammar produces from YAML.

var plainGrammar = mustGrammar(Grammar{
	Name:       "plain",
	Extensions: []string{".txt", ".text"},
})

var goGrammar = mustGrammar(Grammar{
	Name:       "go",
	Extensions: []string{".go"},
	Keywords: []string{
		"break", "case", "chan", "const", "continue", "default",
		"defer", "else", "fallthrough", "for", "func", "go", "goto",
		"if", "import", "interface", "map", "package", "range",
		"return", "select", "struct", "switch", "type", "var",
		"true", "false", "nil", "iota",
	},
	LineComments:      []string{"//"},
	BlockCommentOpen:  "/*",
	BlockCommentClose: "*/",
	Strings: []StringRule{
		{Delimiter: `"`, Escape: `\`},
		{Delimiter: `'`, Escape: `\`},
		{Delimiter: "`", Multiline: true},
	},
	Numbers:   true,
	Operators: DefaultOperators,
})

// Markdown maps onto the generic scanner: fenced code blocks ride the
// block comment state, inline code is a string form, and markup
// punctuation highlights as operators.
var markdownGrammar = mustGrammar(Grammar{
	Name:              "markdown",
	Extensions:        []string{".md", ".markdown"},
	BlockCommentOpen:  "```",
	BlockCommentClose: "```",
	Strings:           []StringRule{{Delimiter: "`"}},
	Operators:         "#*_>-+[]()!",
})

// Plain returns the plain-text grammar. Every line tokenizes as one
// plain span.
func Plain() *Grammar {
	return plainGrammar
}

// Go returns the builtin Go grammar.
func Go() *Grammar {
	return goGrammar
}

// Markdown returns the builtin Markdown grammar.
func Markdown() *Grammar {
	return markdownGrammar
}
