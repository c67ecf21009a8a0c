package model

import "time"

type User struct {
	ID           int64     `json:"userId"`
	Nickname     string    `json:"nickname"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Post struct {
	ID        int64     `json:"postId"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	UserID    int64     `json:"userId"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Comment struct {
	ID        int64     `json:"commentId"`
	PostID    int64     `json:"postId"`
	Content   string    `json:"content"`
	UserID    int64     `json:"userId"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SiteStats struct {
	Users    int64 `json:"users"`
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
}
