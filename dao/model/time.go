package model

import (
	"time"

	"gorm.io/gorm"
)

// ProjectTime is a time-tracking entry.
type ProjectTime struct {
	gorm.Model
	Name        string  `gorm:"type:varchar(128);not null"`
	Description string  `gorm:"type:text"`
	Hours       float64 `gorm:"type:decimal(8,2);not null"`
	DoneDate    time.Time

	IsPrivate bool `gorm:"not null;comment:hidden from non-owner-company actors"`

	ProjectID  uint
	Project    Project
	TaskListID uint
	TaskID     uint

	CreatedByID uint
	UpdatedByID uint
}

func (t *ProjectTime) ObjectID() uint { return t.ID }
func (t *ProjectTime) ObjectType() string { return "ProjectTime" }
func (t *ProjectTime) ObjectName() string { return t.Name }
func (t *ProjectTime) ProjectScope() uint { return t.ProjectID }
func (t *ProjectTime) PrivateRecord() bool { return t.IsPrivate }

// Core permissions. Everything on times hangs off the can_manage_time bit;
// private entries additionally require owner-company membership.

func TimeCanBeCreatedBy(a Actor, p *Project) bool {
	return p.IsActive() && a.HasPermission(p.ID, CanManageTime)
}

func (t *ProjectTime) CanBeSeenBy(a Actor) bool {
	if !a.HasPermission(t.ProjectID, CanManageTime) {
		return false
	}
	return !t.IsPrivate || a.MemberOfOwner()
}

func (t *ProjectTime) CanBeEditedBy(a Actor) bool {
	return a.HasPermission(t.ProjectID, CanManageTime)
}

func (t *ProjectTime) CanBeDeletedBy(a Actor) bool {
	return a.HasPermission(t.ProjectID, CanManageTime)
}
