package model

import "gorm.io/gorm"

// Comment attaches to one of the closed set of commentable entities
// (message, milestone, file, task, task list) via RelObjectType/ID.
// ProjectID is denormalized from the commented object at create time.
type Comment struct {
	gorm.Model
	Text string `gorm:"type:text;not null"`

	RelObjectType string `gorm:"type:varchar(64);not null;index:idx_comment_rel"`
	RelObjectID   uint   `gorm:"not null;index:idx_comment_rel"`
	ProjectID     uint

	IsPrivate   bool
	IsAnonymous bool

	// Author fields are only meaningful on anonymous comments; email and
	// homepage are admin-only in responses.
	AuthorName     string `gorm:"type:varchar(128)"`
	AuthorEmail    string `gorm:"type:varchar(128)"`
	AuthorHomepage string `gorm:"type:varchar(256)"`

	AttachedFilesCount int

	CreatedByID uint
	UpdatedByID uint
}

func (c *Comment) ObjectID() uint { return c.ID }
func (c *Comment) ObjectType() string { return "Comment" }
func (c *Comment) ObjectName() string { return c.Text }
func (c *Comment) ProjectScope() uint { return c.ProjectID }
func (c *Comment) PrivateRecord() bool { return c.IsPrivate }

// Core permissions. Creation is delegated to the commented object's own
// CommentCanBeAddedBy rule, not decided here.

func (c *Comment) CanBeSeenBy(a Actor) bool {
	if !a.HasMembership(c.ProjectID) && !a.OwnerAdmin() {
		return false
	}
	return !c.IsPrivate || a.MemberOfOwner()
}

func (c *Comment) CanBeEditedBy(a Actor) bool {
	return c.CreatedByID == a.UserID() || a.OwnerAdmin()
}

func (c *Comment) CanBeDeletedBy(a Actor) bool {
	return c.CreatedByID == a.UserID() || a.OwnerAdmin()
}
