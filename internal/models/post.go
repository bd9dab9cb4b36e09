package models

import "time"

// Post is a blog post. Threading is a single level deep: a post with a nil
// ParentID is a parent post and may carry children; a post with a ParentID
// is a child and never has children of its own. The post service rejects
// replies onto child posts so the invariant holds structurally in the data.
type Post struct {
	ID         uint `gorm:"primaryKey"`
	Title      string
	Text       string
	Created    time.Time `gorm:"index"`
	UserID     uint      `gorm:"index"`
	User       User
	CategoryID uint `gorm:"index"`
	Category   Category
	ParentID   *uint  `gorm:"index"`
	Children   []Post `gorm:"foreignKey:ParentID"`
}

// IsParent returns true if this is a top-level post.
func (p *Post) IsParent() bool {
	return p.ParentID == nil
}
