package model

import "gorm.io/gorm"

// ProjectFile is the metadata record for an uploaded payload; the bytes
// live in object storage under StorageKey.
type ProjectFile struct {
	gorm.Model
	Filename    string `gorm:"type:varchar(256);not null"`
	Description string `gorm:"type:text"`

	ProjectID uint
	Project   Project
	FolderID  uint

	IsPrivate   bool `gorm:"not null;comment:hidden from non-owner-company actors"`
	IsImportant bool
	IsVisible   bool `gorm:"not null;default:true"`
	IsLocked    bool `gorm:"not null;comment:locked files refuse new comments"`

	StorageKey  string `gorm:"type:varchar(128);not null;comment:object storage key"`
	FileSize    int64
	ContentType string `gorm:"type:varchar(128)"`

	CommentsCount int

	CreatedByID uint
	UpdatedByID uint
}

func (f *ProjectFile) ObjectID() uint { return f.ID }
func (f *ProjectFile) ObjectType() string { return "ProjectFile" }
func (f *ProjectFile) ObjectName() string { return f.Filename }
func (f *ProjectFile) ProjectScope() uint { return f.ProjectID }
func (f *ProjectFile) PrivateRecord() bool { return f.IsPrivate }

// Core permissions

func FileCanBeCreatedBy(a Actor, p *Project) bool {
	return p.IsActive() && a.HasPermission(p.ID, CanUploadFiles)
}

func (f *ProjectFile) CanBeSeenBy(a Actor) bool {
	if !a.HasMembership(f.ProjectID) && !a.OwnerAdmin() {
		return false
	}
	return !f.IsPrivate || a.MemberOfOwner()
}

func (f *ProjectFile) CanBeEditedBy(a Actor) bool {
	return f.Project.IsActive() && a.HasPermission(f.ProjectID, CanManageFiles)
}

func (f *ProjectFile) CanBeDeletedBy(a Actor) bool {
	return f.Project.IsActive() && a.HasPermission(f.ProjectID, CanManageFiles)
}

func (f *ProjectFile) CanBeDownloadedBy(a Actor) bool {
	return f.CanBeSeenBy(a)
}

// Commentable

func (f *ProjectFile) CommentCanBeAddedBy(a Actor) bool {
	if f.IsLocked || !f.Project.IsActive() {
		return false
	}
	return f.CanBeSeenBy(a)
}

func (f *ProjectFile) SubscriberIDs() []uint { return nil }

// AttachedFile binds an uploaded file to a comment or message.
type AttachedFile struct {
	gorm.Model
	RelObjectType string `gorm:"type:varchar(64);not null"`
	RelObjectID   uint   `gorm:"not null"`
	FileID        uint   `gorm:"not null"`
}
