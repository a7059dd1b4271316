package domain

import "time"

// MaxTitleLen mirrors the storage column size for posts.title.
const MaxTitleLen = 200

// PostAuthor is the subset of the author record embedded in post reads.
type PostAuthor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Post struct {
	ID       string `gorm:"primaryKey;size:32" json:"id"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID string `gorm:"size:32;not null;index" json:"authorId"`

	// Author is resolved at read time; posts outlive their authors, so it
	// can be nil.
	Author *PostAuthor `gorm:"-" json:"author,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Post) TableName() string { return "posts" }

// PostFilter narrows List: Search matches title or content, AuthorID
// matches exactly. Offset/Limit are already clamped by the caller.
type PostFilter struct {
	Search   string
	AuthorID string
	Offset   int
	Limit    int
}

type PostRepository interface {
	Create(p *Post) error
	FindByID(id string) (*Post, error)
	List(f PostFilter) ([]Post, int64, error)
	Update(p *Post) error
	Delete(id string) error
}
