package model

import "time"

// Comment is a note attached to an issue.
type Comment struct {
	ID        int64     `json:"id,omitempty"`
	IssueID   string    `json:"issue_id,omitempty"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
