package model

import "gorm.io/gorm"

// ProjectFolder groups files within a project. Folder names are unique per
// project; the composite index backs the validation in the service layer.
type ProjectFolder struct {
	gorm.Model
	Name      string `gorm:"type:varchar(128);not null;uniqueIndex:idx_folder_project_name"`
	ProjectID uint   `gorm:"uniqueIndex:idx_folder_project_name"`
	Project   Project

	Files []ProjectFile `gorm:"foreignKey:FolderID"`

	CreatedByID uint
	UpdatedByID uint
}

func (f *ProjectFolder) ObjectID() uint { return f.ID }
func (f *ProjectFolder) ObjectType() string { return "ProjectFolder" }
func (f *ProjectFolder) ObjectName() string { return f.Name }
func (f *ProjectFolder) ProjectScope() uint { return f.ProjectID }
func (f *ProjectFolder) PrivateRecord() bool { return false }

// Core permissions. Folder management requires the files bit and an
// active (not completed) project; the rules below expect Project to be
// preloaded.

func FolderCanBeCreatedBy(a Actor, p *Project) bool {
	return p.IsActive() && a.HasPermission(p.ID, CanManageFiles)
}

func (f *ProjectFolder) CanBeEditedBy(a Actor) bool {
	return f.Project.IsActive() && a.HasPermission(f.ProjectID, CanManageFiles)
}

func (f *ProjectFolder) CanBeDeletedBy(a Actor) bool {
	return f.Project.IsActive() && a.HasPermission(f.ProjectID, CanManageFiles)
}

func (f *ProjectFolder) CanBeSeenBy(a Actor) bool {
	return a.HasMembership(f.ProjectID) || a.OwnerAdmin()
}

func (f *ProjectFolder) CanBeManagedBy(a Actor) bool {
	return f.Project.IsActive() && a.HasPermission(f.ProjectID, CanManageFiles)
}
