package buffer

import (
	"time"

	"github.com/google/uuid"
)

// Grant is an XP increment that could not be applied when its triggering
// action was persisted. It is replayed later by the grant processor.
type Grant struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	Retries   int       `json:"retries"`
	Timestamp time.Time `json:"timestamp"`

	bucketKey []byte
}

func (g *Grant) normalize() {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Timestamp.IsZero() {
		g.Timestamp = time.Now()
	}
}
