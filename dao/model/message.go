package model

import "gorm.io/gorm"

type ProjectMessageCategory struct {
	gorm.Model
	Name      string `gorm:"type:varchar(64);not null"`
	ProjectID uint
}

type ProjectMessage struct {
	gorm.Model
	Title string `gorm:"type:varchar(256);not null"`
	Text  string `gorm:"type:text"`

	ProjectID  uint
	Project    Project
	CategoryID uint

	MilestoneID uint

	IsPrivate   bool
	IsImportant bool

	CommentsEnabled          bool `gorm:"not null;default:true"`
	AnonymousCommentsEnabled bool

	Subscriptions []MessageSubscription `gorm:"foreignKey:MessageID"`

	CreatedByID uint
	UpdatedByID uint
}

func (m *ProjectMessage) ObjectID() uint { return m.ID }
func (m *ProjectMessage) ObjectType() string { return "ProjectMessage" }
func (m *ProjectMessage) ObjectName() string { return m.Title }
func (m *ProjectMessage) ProjectScope() uint { return m.ProjectID }
func (m *ProjectMessage) PrivateRecord() bool { return m.IsPrivate }

// Core permissions

func MessageCanBeCreatedBy(a Actor, p *Project) bool {
	return p.IsActive() && a.HasPermission(p.ID, CanManageMessages)
}

func (m *ProjectMessage) CanBeSeenBy(a Actor) bool {
	if !a.HasMembership(m.ProjectID) && !a.OwnerAdmin() {
		return false
	}
	return !m.IsPrivate || a.MemberOfOwner()
}

func (m *ProjectMessage) CanBeEditedBy(a Actor) bool {
	if m.CreatedByID == a.UserID() {
		return true
	}
	return a.HasPermission(m.ProjectID, CanManageMessages)
}

func (m *ProjectMessage) CanBeDeletedBy(a Actor) bool {
	return a.HasPermission(m.ProjectID, CanManageMessages)
}

// Commentable

func (m *ProjectMessage) CommentCanBeAddedBy(a Actor) bool {
	if !m.CommentsEnabled || !m.Project.IsActive() {
		return false
	}
	return m.CanBeSeenBy(a)
}

// SubscriberIDs requires Subscriptions to be preloaded.
func (m *ProjectMessage) SubscriberIDs() []uint {
	ids := make([]uint, 0, len(m.Subscriptions))
	for _, s := range m.Subscriptions {
		ids = append(ids, s.UserID)
	}
	return ids
}

// MessageSubscription marks a user for comment notifications on a
// message. Commenting subscribes the author automatically.
type MessageSubscription struct {
	gorm.Model
	UserID    uint `gorm:"primaryKey"`
	MessageID uint `gorm:"primaryKey"`
}
