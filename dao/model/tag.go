package model

import "gorm.io/gorm"

// Tag labels any project-scoped entity via RelObjectType/ID.
type Tag struct {
	gorm.Model
	Name string `gorm:"type:varchar(64);not null;index"`

	ProjectID     uint   `gorm:"index"`
	RelObjectType string `gorm:"type:varchar(64);not null"`
	RelObjectID   uint   `gorm:"not null"`

	CreatedByID uint
}
