package highlight

import "github.com/itzCozi/QNote-sub000/internal/engine/buffer"

// Kind is the semantic class of a token.
type Kind uint8

// Token kinds. KindPlain is the zero value, so unclassified text needs
// no special casing.
const (
	KindPlain Kind = iota
	KindKeyword
	KindString
	KindComment
	KindNumber
	KindIdentifier
	KindOperator

	kindCount
)

var kindNames = []string{
	KindPlain:      "plain",
	KindKeyword:    "keyword",
	KindString:     "string",
	KindComment:    "comment",
	KindNumber:     "number",
	KindIdentifier: "identifier",
	KindOperator:   "operator",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is one highlighted span. Range is in buffer offsets. The tokens
// of a line are sorted, non-overlapping, and cover the line's text
// without gaps.
type Token struct {
	Range buffer.Range
	Kind  Kind
}

// Len returns the token's byte length.
func (t Token) Len() int {
	return int(t.Range.Len())
}

// State is the scanner mode carried across a line boundary. StateNormal
// is the zero value; other values identify the open multi-line
// construct so the next line resumes inside it.
type State uint32

const (
	StateNormal State = iota
	StateBlockComment

	// States above stateStringBase encode an unterminated multi-line
	// string; the offset selects the string rule that opened it.
	stateStringBase
)

// StringState returns the state for an unterminated multi-line string
// opened by the grammar's string rule i.
func StringState(i int) State {
	return stateStringBase + State(i)
}

// stringRule returns the string rule index encoded in a string state,
// or -1 when the state is not a string state.
func (s State) stringRule() int {
	if s < stateStringBase {
		return -1
	}
	return int(s - stateStringBase)
}

// span is a token in line-local byte columns. The cache stores spans so
// edits on earlier lines never invalidate positions on later ones;
// TokensForLine translates to buffer offsets on the way out.
type span struct {
	start, end int
	kind       Kind
}
