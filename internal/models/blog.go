package models

import "time"

type Blog struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Author    *string    `json:"author"`
	URL       string     `json:"url"`
	Likes     int64      `json:"likes"`
	User      *BlogOwner `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// OwnerID returns the id of the user that created the blog, or "" when unknown.
func (b Blog) OwnerID() string {
	if b.User == nil {
		return ""
	}
	return b.User.ID
}

// BlogOwner is the owner reference embedded in a blog. Username and Name are
// filled only when the store resolved them.
type BlogOwner struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
}

type BlogSummary struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Author *string `json:"author"`
	URL    string  `json:"url"`
	Likes  int64   `json:"likes"`
}

func (b Blog) Summary() BlogSummary {
	return BlogSummary{ID: b.ID, Title: b.Title, Author: b.Author, URL: b.URL, Likes: b.Likes}
}

// NewBlog holds validated creation input.
type NewBlog struct {
	Title   string
	Author  *string
	URL     string
	Likes   int64
	OwnerID string
}

// BlogPatch holds validated update input; nil fields are left unchanged.
type BlogPatch struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int64
}

// Apply merges the supplied fields into b.
func (p BlogPatch) Apply(b *Blog) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = p.Author
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Likes != nil {
		b.Likes = *p.Likes
	}
}
