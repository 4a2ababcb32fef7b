package highlight

import (
	"reflect"
	"testing"
)

// checkCoverage asserts the spans tile [0, n) in order with no gaps.
func checkCoverage(t *testing.T, spans []span, n int) {
	t.Helper()
	at := 0
	for i, sp := range spans {
		if sp.start != at {
			t.Errorf("span %d starts at %d, want %d", i, sp.start, at)
		}
		if sp.end <= sp.start {
			t.Errorf("span %d is empty or reversed: %+v", i, sp)
		}
		at = sp.end
	}
	if at != n {
		t.Errorf("spans end at %d, want %d", at, n)
	}
}

func TestScanLineGo(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		start   State
		want    []span
		wantEnd State
	}{
		{
			name:  "keywords operators numbers comment",
			line:  "if x == 42 { // hi",
			start: StateNormal,
			want: []span{
				{0, 2, KindKeyword},
				{2, 3, KindPlain},
				{3, 4, KindIdentifier},
				{4, 5, KindPlain},
				{5, 7, KindOperator},
				{7, 8, KindPlain},
				{8, 10, KindNumber},
				{10, 11, KindPlain},
				{11, 12, KindOperator},
				{12, 13, KindPlain},
				{13, 18, KindComment},
			},
			wantEnd: StateNormal,
		},
		{
			name:  "string with escaped quote",
			line:  `s := "a\"b" + 'c'`,
			start: StateNormal,
			want: []span{
				{0, 1, KindIdentifier},
				{1, 2, KindPlain},
				{2, 4, KindOperator},
				{4, 5, KindPlain},
				{5, 11, KindString},
				{11, 12, KindPlain},
				{12, 13, KindOperator},
				{13, 14, KindPlain},
				{14, 17, KindString},
			},
			wantEnd: StateNormal,
		},
		{
			name:  "block comment closed on one line",
			line:  "a /* b */ c",
			start: StateNormal,
			want: []span{
				{0, 1, KindIdentifier},
				{1, 2, KindPlain},
				{2, 9, KindComment},
				{9, 10, KindPlain},
				{10, 11, KindIdentifier},
			},
			wantEnd: StateNormal,
		},
		{
			name:  "block comment left open",
			line:  "x /* open",
			start: StateNormal,
			want: []span{
				{0, 1, KindIdentifier},
				{1, 2, KindPlain},
				{2, 9, KindComment},
			},
			wantEnd: StateBlockComment,
		},
		{
			name:  "resume block comment and close",
			line:  "*/ y",
			start: StateBlockComment,
			want: []span{
				{0, 2, KindComment},
				{2, 3, KindPlain},
				{3, 4, KindIdentifier},
			},
			wantEnd: StateNormal,
		},
		{
			name:    "resume block comment unclosed",
			line:    "all comment",
			start:   StateBlockComment,
			want:    []span{{0, 11, KindComment}},
			wantEnd: StateBlockComment,
		},
		{
			name:  "raw string left open",
			line:  "s := `raw",
			start: StateNormal,
			want: []span{
				{0, 1, KindIdentifier},
				{1, 2, KindPlain},
				{2, 4, KindOperator},
				{4, 5, KindPlain},
				{5, 9, KindString},
			},
			wantEnd: StringState(2),
		},
		{
			name:  "resume raw string and close",
			line:  "end` + 1",
			start: StringState(2),
			want: []span{
				{0, 4, KindString},
				{4, 5, KindPlain},
				{5, 6, KindOperator},
				{6, 7, KindPlain},
				{7, 8, KindNumber},
			},
			wantEnd: StateNormal,
		},
		{
			name:  "unterminated quoted string stays single line",
			line:  `x = "oops`,
			start: StateNormal,
			want: []span{
				{0, 1, KindIdentifier},
				{1, 2, KindPlain},
				{2, 3, KindOperator},
				{3, 4, KindPlain},
				{4, 9, KindString},
			},
			wantEnd: StateNormal,
		},
		{
			name:    "empty line",
			line:    "",
			start:   StateNormal,
			want:    nil,
			wantEnd: StateNormal,
		},
	}

	g := Go()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, end := scanLine(g, tt.line, tt.start)
			if len(got) != 0 || len(tt.want) != 0 {
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("spans = %+v, want %+v", got, tt.want)
				}
			}
			if end != tt.wantEnd {
				t.Errorf("end state = %v, want %v", end, tt.wantEnd)
			}
			checkCoverage(t, got, len(tt.line))
		})
	}
}

func TestScanLineMarkdown(t *testing.T) {
	g := Markdown()

	spans, end := scanLine(g, "# Hi", StateNormal)
	want := []span{
		{0, 1, KindOperator},
		{1, 2, KindPlain},
		{2, 4, KindIdentifier},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("heading spans = %+v, want %+v", spans, want)
	}
	if end != StateNormal {
		t.Errorf("heading end state = %v", end)
	}

	spans, end = scanLine(g, "```go", StateNormal)
	if !reflect.DeepEqual(spans, []span{{0, 5, KindComment}}) {
		t.Errorf("fence spans = %+v", spans)
	}
	if end != StateBlockComment {
		t.Errorf("fence must open the block state, got %v", end)
	}

	spans, _ = scanLine(g, "a `b` c", StateNormal)
	want = []span{
		{0, 1, KindIdentifier},
		{1, 2, KindPlain},
		{2, 5, KindString},
		{5, 6, KindPlain},
		{6, 7, KindIdentifier},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("inline code spans = %+v, want %+v", spans, want)
	}
}

func TestScanLinePlain(t *testing.T) {
	spans, end := scanLine(Plain(), "anything at all, even 42 // no", StateNormal)
	if end != StateNormal {
		t.Errorf("plain end state = %v", end)
	}
	// Identifiers still split out (the spell checker reads them), the
	// rest merges into plain runs.
	checkCoverage(t, spans, 30)
	for _, sp := range spans {
		if sp.kind != KindPlain && sp.kind != KindIdentifier {
			t.Errorf("plain grammar produced %v", sp.kind)
		}
	}
}

func TestFindStringEnd(t *testing.T) {
	rule := StringRule{Delimiter: `"`, Escape: `\`}

	tests := []struct {
		line   string
		pos    int
		want   int
		closed bool
	}{
		{`ab"`, 0, 3, true},
		{`a\"b"`, 0, 5, true},
		{`no close`, 0, 8, false},
		{`trailing escape\`, 0, 16, false},
	}
	for _, tt := range tests {
		got, closed := findStringEnd(tt.line, tt.pos, rule)
		if got != tt.want || closed != tt.closed {
			t.Errorf("findStringEnd(%q) = (%d, %v), want (%d, %v)",
				tt.line, got, closed, tt.want, tt.closed)
		}
	}
}
