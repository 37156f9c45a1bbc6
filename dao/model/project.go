package model

import (
	"time"

	"gorm.io/gorm"
)

// Project is the root entity; every other project-scoped record cascades
// from it on destroy.
type Project struct {
	gorm.Model
	Name                      string `gorm:"type:varchar(128);not null;comment:project name"`
	Description               string `gorm:"type:text"`
	Priority                  int    `gorm:"type:int;comment:sort weight on the dashboard"`
	ShowDescriptionInOverview bool

	// CompletedOn is null while the project is active. Set and cleared
	// only through the completion transition, never by plain updates.
	CompletedOn   *time.Time
	CompletedByID uint

	CreatedByID uint
	UpdatedByID uint

	ProjectUsers []ProjectUser
	Companies    []Company `gorm:"many2many:project_companies"`

	Folders           []ProjectFolder
	Files             []ProjectFile
	Messages          []ProjectMessage
	MessageCategories []ProjectMessageCategory
	Milestones        []ProjectMilestone
	TaskLists         []ProjectTaskList
	Times             []ProjectTime
	WikiPages         []WikiPage
	Logs              []ApplicationLog
}

func (p *Project) ObjectID() uint { return p.ID }
func (p *Project) ObjectType() string { return "Project" }
func (p *Project) ObjectName() string { return p.Name }
func (p *Project) ProjectScope() uint { return p.ID }
func (p *Project) PrivateRecord() bool { return false }

func (p *Project) IsActive() bool {
	return p.CompletedOn == nil
}

func (p *Project) Completed() bool {
	return p.CompletedOn != nil
}

func (p *Project) SetCompleted(on *time.Time, byID uint) {
	p.CompletedOn = on
	p.CompletedByID = byID
}

// Core permissions

func ProjectCanBeCreatedBy(a Actor) bool {
	return a.MemberOfOwner() && a.IsAdmin()
}

func (p *Project) CanBeSeenBy(a Actor) bool {
	return a.HasMembership(p.ID) || a.OwnerAdmin()
}

func (p *Project) CanBeEditedBy(a Actor) bool {
	return a.MemberOfOwner() && a.IsAdmin()
}

func (p *Project) CanBeDeletedBy(a Actor) bool {
	return a.MemberOfOwner() && a.IsAdmin()
}

// Specific permissions

func (p *Project) CanBeManagedBy(a Actor) bool {
	return a.MemberOfOwner() && a.IsAdmin()
}

func (p *Project) StatusCanBeChangedBy(a Actor) bool {
	return p.CanBeEditedBy(a)
}

// CompanyCanBeRemovedBy protects the owner company from being detached.
func (p *Project) CompanyCanBeRemovedBy(co *Company, a Actor) bool {
	if co.IsOwner {
		return false
	}
	return a.OwnerAdmin()
}

// UserCanBeRemovedBy protects owner-company admins from removal. The
// removed user must have Company preloaded.
func (p *Project) UserCanBeRemovedBy(remove *User, a Actor) bool {
	if remove.IsAdmin && remove.MemberOfOwnerCompany() {
		return false
	}
	return a.OwnerAdmin()
}

// ProjectUser is the membership row: one per (project, user) pair,
// carrying the permission bitset. Absence of a row means no membership.
type ProjectUser struct {
	gorm.Model
	UserID      uint       `gorm:"primaryKey"`
	ProjectID   uint       `gorm:"primaryKey"`
	Permissions Permission `gorm:"not null;comment:capability bitset (messages, tasks, milestones, time, files...)"`
}
