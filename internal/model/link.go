package model

import "time"

// Link is a saved URL with an editable description.
type Link struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"created_at"`
}

// CreatedTime converts the epoch-millisecond creation stamp.
func (l Link) CreatedTime() time.Time { return time.UnixMilli(l.CreatedAt) }
