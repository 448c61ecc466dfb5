package post

import (
	"time"

	"github.com/gofrs/uuid"

	"github.com/emreyozkan/SportConnect/internal/user"
)

// Post is immutable once created. Author is populated in responses only
// and never stored alongside the post row.
type Post struct {
	ID        uuid.UUID    `json:"id"`
	Content   string       `json:"content"`
	AuthorID  uuid.UUID    `json:"-"`
	Author    *user.Public `json:"author,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}
