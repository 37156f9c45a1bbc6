package model

import (
	"time"

	"gorm.io/gorm"
)

type ProjectMilestone struct {
	gorm.Model
	Name        string `gorm:"type:varchar(128);not null"`
	Description string `gorm:"type:text"`
	DueDate     time.Time

	CompletedOn   *time.Time
	CompletedByID uint

	AssignedToUserID    uint
	AssignedToCompanyID uint

	IsPrivate bool

	ProjectID uint
	Project   Project

	CreatedByID uint
	UpdatedByID uint
}

func (m *ProjectMilestone) ObjectID() uint { return m.ID }
func (m *ProjectMilestone) ObjectType() string { return "ProjectMilestone" }
func (m *ProjectMilestone) ObjectName() string { return m.Name }
func (m *ProjectMilestone) ProjectScope() uint { return m.ProjectID }
func (m *ProjectMilestone) PrivateRecord() bool { return m.IsPrivate }

func (m *ProjectMilestone) Completed() bool {
	return m.CompletedOn != nil
}

func (m *ProjectMilestone) SetCompleted(on *time.Time, byID uint) {
	m.CompletedOn = on
	m.CompletedByID = byID
}

func (m *ProjectMilestone) IsLate() bool {
	return m.CompletedOn == nil && m.DueDate.Before(time.Now().Truncate(24*time.Hour))
}

func (m *ProjectMilestone) IsToday() bool {
	if m.CompletedOn != nil {
		return false
	}
	now := time.Now()
	return m.DueDate.Year() == now.Year() && m.DueDate.YearDay() == now.YearDay()
}

func (m *ProjectMilestone) IsUpcoming() bool {
	return m.CompletedOn == nil && m.DueDate.After(time.Now())
}

// Core permissions

func MilestoneCanBeCreatedBy(a Actor, p *Project) bool {
	return p.IsActive() && a.HasPermission(p.ID, CanManageMilestones)
}

func (m *ProjectMilestone) CanBeSeenBy(a Actor) bool {
	if !a.HasMembership(m.ProjectID) && !a.OwnerAdmin() {
		return false
	}
	return !m.IsPrivate || a.MemberOfOwner()
}

func (m *ProjectMilestone) CanBeEditedBy(a Actor) bool {
	return a.HasPermission(m.ProjectID, CanManageMilestones)
}

func (m *ProjectMilestone) CanBeDeletedBy(a Actor) bool {
	return a.HasPermission(m.ProjectID, CanManageMilestones)
}

// StatusCanBeChangedBy lets assignees close their own milestones without
// the manage bit.
func (m *ProjectMilestone) StatusCanBeChangedBy(a Actor) bool {
	if !a.HasMembership(m.ProjectID) && !a.OwnerAdmin() {
		return false
	}
	return a.HasPermission(m.ProjectID, CanManageMilestones) || m.AssignedToUserID == a.UserID()
}

// Commentable

func (m *ProjectMilestone) CommentCanBeAddedBy(a Actor) bool {
	return m.Project.IsActive() && m.CanBeSeenBy(a)
}

func (m *ProjectMilestone) SubscriberIDs() []uint { return nil }
