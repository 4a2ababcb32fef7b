package highlight

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanLine tokenizes one line (without its trailing newline) given the
// scanner state at the start of the line. Returned spans are sorted,
// non-overlapping, and cover the whole line.
func scanLine(g *Grammar, line string, start State) ([]span, State) {
	sc := lineScanner{g: g, line: line}
	end := sc.run(start)
	return sc.spans, end
}

type lineScanner struct {
	g     *Grammar
	line  string
	pos   int
	spans []span
}

// emit appends a span, merging it into the previous one when the kinds
// match and the spans touch.
func (s *lineScanner) emit(start, end int, kind Kind) {
	if end <= start {
		return
	}
	if n := len(s.spans); n > 0 && s.spans[n-1].kind == kind && s.spans[n-1].end == start {
		s.spans[n-1].end = end
		return
	}
	s.spans = append(s.spans, span{start: start, end: end, kind: kind})
}

func (s *lineScanner) run(start State) State {
	// Resume inside a construct left open by the previous line.
	switch {
	case start == StateBlockComment:
		i := strings.Index(s.line, s.g.BlockCommentClose)
		if i < 0 {
			s.emit(0, len(s.line), KindComment)
			return StateBlockComment
		}
		end := i + len(s.g.BlockCommentClose)
		s.emit(0, end, KindComment)
		s.pos = end

	case start.stringRule() >= 0:
		rule := s.g.Strings[start.stringRule()]
		end, closed := findStringEnd(s.line, 0, rule)
		s.emit(0, end, KindString)
		if !closed {
			return start
		}
		s.pos = end
	}

	return s.normal()
}

// normal scans from pos to end of line in the normal state.
func (s *lineScanner) normal() State {
	g := s.g
	for s.pos < len(s.line) {
		rest := s.line[s.pos:]

		if matchAny(rest, g.LineComments) {
			s.emit(s.pos, len(s.line), KindComment)
			s.pos = len(s.line)
			return StateNormal
		}

		if g.BlockCommentOpen != "" && strings.HasPrefix(rest, g.BlockCommentOpen) {
			open := len(g.BlockCommentOpen)
			if i := strings.Index(rest[open:], g.BlockCommentClose); i >= 0 {
				end := s.pos + open + i + len(g.BlockCommentClose)
				s.emit(s.pos, end, KindComment)
				s.pos = end
				continue
			}
			s.emit(s.pos, len(s.line), KindComment)
			s.pos = len(s.line)
			return StateBlockComment
		}

		if ri, rule, ok := stringStart(g, rest); ok {
			from := s.pos
			end, closed := findStringEnd(s.line, s.pos+len(rule.Delimiter), rule)
			s.emit(from, end, KindString)
			s.pos = end
			if closed {
				continue
			}
			if rule.Multiline {
				return StringState(ri)
			}
			// Unterminated single-line literal runs to end of line.
			return StateNormal
		}

		r, size := utf8.DecodeRuneInString(rest)

		if isIdentStart(r) {
			from := s.pos
			s.pos += size
			s.advanceWhile(isIdentPart)
			word := s.line[from:s.pos]
			if g.isKeyword(word) {
				s.emit(from, s.pos, KindKeyword)
			} else {
				s.emit(from, s.pos, KindIdentifier)
			}
			continue
		}

		if g.Numbers && unicode.IsDigit(r) {
			from := s.pos
			s.pos += size
			s.advanceWhile(isNumberPart)
			s.emit(from, s.pos, KindNumber)
			continue
		}

		if g.isOperator(r) {
			from := s.pos
			s.pos += size
			s.advanceWhile(g.isOperator)
			s.emit(from, s.pos, KindOperator)
			continue
		}

		s.emit(s.pos, s.pos+size, KindPlain)
		s.pos += size
	}
	return StateNormal
}

// advanceWhile moves pos forward over runes matching pred.
func (s *lineScanner) advanceWhile(pred func(rune) bool) {
	for s.pos < len(s.line) {
		r, size := utf8.DecodeRuneInString(s.line[s.pos:])
		if !pred(r) {
			return
		}
		s.pos += size
	}
}

// findStringEnd scans for the closing delimiter from pos, honoring the
// rule's escape prefix. It returns the position just past the close and
// whether the literal terminated on this line.
func findStringEnd(line string, pos int, rule StringRule) (int, bool) {
	for pos < len(line) {
		if rule.Escape != "" && strings.HasPrefix(line[pos:], rule.Escape) {
			pos += len(rule.Escape)
			_, size := utf8.DecodeRuneInString(line[pos:])
			pos += size
			continue
		}
		if strings.HasPrefix(line[pos:], rule.Delimiter) {
			return pos + len(rule.Delimiter), true
		}
		_, size := utf8.DecodeRuneInString(line[pos:])
		pos += size
	}
	return len(line), false
}

// stringStart returns the string rule whose delimiter prefixes rest,
// preferring the longest delimiter so """ wins over ".
func stringStart(g *Grammar, rest string) (int, StringRule, bool) {
	best := -1
	for i, rule := range g.Strings {
		if strings.HasPrefix(rest, rule.Delimiter) {
			if best < 0 || len(rule.Delimiter) > len(g.Strings[best].Delimiter) {
				best = i
			}
		}
	}
	if best < 0 {
		return 0, StringRule{}, false
	}
	return best, g.Strings[best], true
}

// matchAny reports whether any marker prefixes s.
func matchAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.HasPrefix(s, m) {
			return true
		}
	}
	return false
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// isNumberPart accepts the characters of integer, float, hex, and
// exponent forms. This is highlighting tolerance, not number syntax.
func isNumberPart(r rune) bool {
	return unicode.IsDigit(r) || unicode.IsLetter(r) || r == '.' || r == '_'
}
