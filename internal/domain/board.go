package domain

import "time"

// Board is a user-owned collection. The pipeline only reads it.
type Board struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}

// BoardPost is the (BoardID, PostID) association; a post appears in a board
// at most once.
type BoardPost struct {
	ID        string
	BoardID   string
	PostID    string
	CreatedAt time.Time
}
