package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Optional fields for user
type UserAttribute struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	IMValue  string `json:"imValue,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// User is the basic entity of the system
type User struct {
	gorm.Model
	Username    string `gorm:"uniqueIndex;type:varchar(64);not null;comment:login name"`
	DisplayName string `gorm:"type:varchar(64);comment:name shown on cards and comments"`
	Password    string `gorm:"type:varchar(256);comment:bcrypt hash"`
	IsAdmin     bool   `gorm:"not null;comment:administrative role flag"`
	AutoAssign  bool   `gorm:"not null;comment:auto-assign to new projects"`

	CompanyID uint
	Company   Company

	Attributes datatypes.JSONType[UserAttribute] `gorm:"comment:extra profile fields (email, phone, avatar, IM)"`

	ProjectUsers []ProjectUser
	CreatedByID  uint
}

func (u *User) ObjectID() uint { return u.ID }
func (u *User) ObjectType() string { return "User" }
func (u *User) ObjectName() string { return u.DisplayName }
func (u *User) ProjectScope() uint { return 0 }
func (u *User) PrivateRecord() bool { return false }

// MemberOfOwnerCompany requires Company to be preloaded.
func (u *User) MemberOfOwnerCompany() bool {
	return u.Company.IsOwner
}

// Core permissions

func UserCanBeCreatedBy(a Actor) bool {
	return a.IsAdmin() && a.MemberOfOwner()
}

// ProfileCanBeUpdatedBy allows self-service edits without any project
// permission; administrative edits require an owner-company admin.
func (u *User) ProfileCanBeUpdatedBy(a Actor) bool {
	return u.ID == a.UserID() || a.OwnerAdmin()
}

func (u *User) CanBeDeletedBy(a Actor) bool {
	if u.ID == a.UserID() {
		return false
	}
	return a.OwnerAdmin()
}

func (u *User) CanBeViewedBy(a Actor) bool {
	return a.MemberOfOwner() || a.IsAdmin() || u.ID == a.UserID()
}

// PermissionsCanBeUpdatedBy gates the per-project permission matrix.
func (u *User) PermissionsCanBeUpdatedBy(a Actor) bool {
	return a.OwnerAdmin()
}

// Company groups users; the distinguished owner company receives
// elevated, cross-project administrative visibility.
type Company struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;type:varchar(128);not null;comment:company name"`
	IsOwner  bool   `gorm:"not null;comment:owner company flag"`
	Homepage string `gorm:"type:varchar(256)"`
	TimeZone string `gorm:"type:varchar(64)"`

	Users       []User
	CreatedByID uint
}

func (co *Company) ObjectID() uint { return co.ID }
func (co *Company) ObjectType() string { return "Company" }
func (co *Company) ObjectName() string { return co.Name }
func (co *Company) ProjectScope() uint { return 0 }
func (co *Company) PrivateRecord() bool { return false }

func CompanyCanBeCreatedBy(a Actor) bool {
	return a.OwnerAdmin()
}

func (co *Company) CanBeEditedBy(a Actor) bool {
	return a.OwnerAdmin()
}

// CanBeDeletedBy never allows removing the owner company.
func (co *Company) CanBeDeletedBy(a Actor) bool {
	if co.IsOwner {
		return false
	}
	return a.OwnerAdmin()
}
