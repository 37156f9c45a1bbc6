package model

import "gorm.io/gorm"

// ApplicationLog is the append-only audit trail: one row per mutating
// operation, never updated afterwards.
type ApplicationLog struct {
	gorm.Model
	Action LogAction `gorm:"not null;comment:add, edit, close, open, delete"`

	RelObjectType string `gorm:"type:varchar(64);not null"`
	RelObjectID   uint   `gorm:"not null"`
	ObjectName    string `gorm:"type:varchar(256);comment:display name captured at log time"`

	// ProjectID scopes the row to a project; zero for site-wide entries
	// (including the final delete entry of a project itself, which must
	// survive the project cascade).
	ProjectID uint `gorm:"index"`

	CreatedByID uint
	IsPrivate   bool
	IsSilent    bool `gorm:"comment:silent entries are excluded from activity digests"`
}

// NewLog captures the loggable's identity into a fresh audit row.
func NewLog(rec Loggable, actorID uint, action LogAction) *ApplicationLog {
	return &ApplicationLog{
		Action:        action,
		RelObjectType: rec.ObjectType(),
		RelObjectID:   rec.ObjectID(),
		ObjectName:    rec.ObjectName(),
		ProjectID:     rec.ProjectScope(),
		CreatedByID:   actorID,
		IsPrivate:     rec.PrivateRecord(),
	}
}

func (l *ApplicationLog) CanBeSeenBy(a Actor) bool {
	if l.ProjectID != 0 && !a.HasMembership(l.ProjectID) && !a.OwnerAdmin() {
		return false
	}
	return !l.IsPrivate || a.MemberOfOwner()
}
