package notestore

import (
	"time"

	"github.com/google/uuid"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

// Note describes one stored note. CreatedAt is exact only for notes
// created in this process; for files found on disk it falls back to
// the modification time, since plain files carry no birth time.
type Note struct {
	ID         uuid.UUID
	Title      string
	Path       string
	Language   string
	CreatedAt  time.Time
	ModifiedAt time.Time
	Encoding   Encoding
	LineEnding buffer.LineEnding
}
