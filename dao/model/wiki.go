package model

import "gorm.io/gorm"

// WikiPage is a project wiki article. Pages cascade with the project.
type WikiPage struct {
	gorm.Model
	Title   string `gorm:"type:varchar(256);not null"`
	Slug    string `gorm:"type:varchar(256);not null;uniqueIndex:idx_wiki_project_slug"`
	Content string `gorm:"type:text"`

	ProjectID uint `gorm:"uniqueIndex:idx_wiki_project_slug"`
	Project   Project

	CreatedByID uint
	UpdatedByID uint
}

func (w *WikiPage) ObjectID() uint { return w.ID }
func (w *WikiPage) ObjectType() string { return "WikiPage" }
func (w *WikiPage) ObjectName() string { return w.Title }
func (w *WikiPage) ProjectScope() uint { return w.ProjectID }
func (w *WikiPage) PrivateRecord() bool { return false }

func (w *WikiPage) CanBeSeenBy(a Actor) bool {
	return a.HasMembership(w.ProjectID) || a.OwnerAdmin()
}

func (w *WikiPage) CanBeEditedBy(a Actor) bool {
	return w.Project.IsActive() && a.HasMembership(w.ProjectID)
}

func (w *WikiPage) CanBeDeletedBy(a Actor) bool {
	return w.Project.IsActive() && a.HasPermission(w.ProjectID, CanManageMessages)
}
