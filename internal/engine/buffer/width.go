package buffer

import "github.com/mattn/go-runewidth"

// VisualColumn converts a point's byte column into the display column a
// renderer would place it at, expanding tabs to the buffer's tab width
// and accounting for wide runes.
func (b *Buffer) VisualColumn(p Point) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, err := b.lineRangeLocked(p.Line)
	if err != nil {
		return 0, err
	}
	if p.Column < 0 || ByteOffset(p.Column) > r.Len() {
		return 0, ErrOutOfRange
	}

	prefix := string(b.rope.Slice(int(r.Start), int(r.Start)+p.Column))
	col := 0
	for _, ch := range prefix {
		if ch == '\t' {
			col += b.tabWidth - col%b.tabWidth
			continue
		}
		col += runewidth.RuneWidth(ch)
	}
	return col, nil
}
