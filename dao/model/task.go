package model

import (
	"time"

	"gorm.io/gorm"
)

type ProjectTaskList struct {
	gorm.Model
	Name     string `gorm:"type:varchar(128);not null"`
	Position int    `gorm:"type:int;comment:sort weight, descending"`

	CompletedOn   *time.Time
	CompletedByID uint

	IsPrivate bool

	ProjectID   uint
	Project     Project
	MilestoneID uint

	Tasks []ProjectTask `gorm:"foreignKey:TaskListID"`

	CreatedByID uint
	UpdatedByID uint
}

func (tl *ProjectTaskList) ObjectID() uint { return tl.ID }
func (tl *ProjectTaskList) ObjectType() string { return "ProjectTaskList" }
func (tl *ProjectTaskList) ObjectName() string { return tl.Name }
func (tl *ProjectTaskList) ProjectScope() uint { return tl.ProjectID }
func (tl *ProjectTaskList) PrivateRecord() bool { return tl.IsPrivate }

func (tl *ProjectTaskList) Completed() bool {
	return tl.CompletedOn != nil
}

func (tl *ProjectTaskList) SetCompleted(on *time.Time, byID uint) {
	tl.CompletedOn = on
	tl.CompletedByID = byID
}

// Core permissions

func TaskListCanBeCreatedBy(a Actor, p *Project) bool {
	return p.IsActive() && a.HasPermission(p.ID, CanManageTasks)
}

func (tl *ProjectTaskList) CanBeSeenBy(a Actor) bool {
	if !a.HasMembership(tl.ProjectID) && !a.OwnerAdmin() {
		return false
	}
	return !tl.IsPrivate || a.MemberOfOwner()
}

func (tl *ProjectTaskList) CanBeEditedBy(a Actor) bool {
	return a.HasPermission(tl.ProjectID, CanManageTasks)
}

func (tl *ProjectTaskList) CanBeDeletedBy(a Actor) bool {
	return a.HasPermission(tl.ProjectID, CanManageTasks)
}

// Commentable

func (tl *ProjectTaskList) CommentCanBeAddedBy(a Actor) bool {
	return tl.Project.IsActive() && tl.CanBeSeenBy(a)
}

func (tl *ProjectTaskList) SubscriberIDs() []uint { return nil }

// ProjectTask belongs to a task list. ProjectID is denormalized from the
// list so scope checks and cascades need no join.
type ProjectTask struct {
	gorm.Model
	Text     string `gorm:"type:text;not null"`
	Position int

	TaskListID uint
	TaskList   ProjectTaskList
	ProjectID  uint

	CompletedOn   *time.Time
	CompletedByID uint

	AssignedToUserID    uint
	AssignedToCompanyID uint

	CreatedByID uint
	UpdatedByID uint
}

func (t *ProjectTask) ObjectID() uint { return t.ID }
func (t *ProjectTask) ObjectType() string { return "ProjectTask" }
func (t *ProjectTask) ObjectName() string { return t.Text }
func (t *ProjectTask) ProjectScope() uint { return t.ProjectID }
func (t *ProjectTask) PrivateRecord() bool { return false }

func (t *ProjectTask) Completed() bool {
	return t.CompletedOn != nil
}

func (t *ProjectTask) SetCompleted(on *time.Time, byID uint) {
	t.CompletedOn = on
	t.CompletedByID = byID
}

// Core permissions

func TaskCanBeCreatedBy(a Actor, tl *ProjectTaskList) bool {
	return tl.Project.IsActive() && a.HasPermission(tl.ProjectID, CanManageTasks)
}

func (t *ProjectTask) CanBeSeenBy(a Actor) bool {
	return a.HasMembership(t.ProjectID) || a.OwnerAdmin()
}

func (t *ProjectTask) CanBeEditedBy(a Actor) bool {
	return a.HasPermission(t.ProjectID, CanManageTasks)
}

func (t *ProjectTask) CanBeDeletedBy(a Actor) bool {
	return a.HasPermission(t.ProjectID, CanManageTasks)
}

// StatusCanBeChangedBy lets assignees close their own tasks without the
// manage bit.
func (t *ProjectTask) StatusCanBeChangedBy(a Actor) bool {
	if !a.HasMembership(t.ProjectID) && !a.OwnerAdmin() {
		return false
	}
	return a.HasPermission(t.ProjectID, CanManageTasks) || t.AssignedToUserID == a.UserID()
}

// Commentable

func (t *ProjectTask) CommentCanBeAddedBy(a Actor) bool {
	return t.CanBeSeenBy(a)
}

func (t *ProjectTask) SubscriberIDs() []uint { return nil }
