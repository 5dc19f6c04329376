package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a user-defined label that can be applied to events.
// Tags are global, not owned by any trip or event.
// Identity is determined by Slug, which is always lowercase and hyphenated.
// Name preserves the original casing supplied by whoever created the tag first.
type Tag struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}
