package buffer

import "fmt"

// ByteOffset is a byte position in the buffer.
// Type alias for int64 to allow direct arithmetic while providing
// documentation value in signatures.
type ByteOffset = int64

// Point represents a line/column position in the buffer.
// Both are 0-indexed; Column is a byte offset within the line.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Compare returns -1, 0, or 1 if p is before, equal to, or after other.
func (p Point) Compare(other Point) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other in the buffer.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other in the buffer.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}
