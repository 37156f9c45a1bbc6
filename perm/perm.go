// Package perm holds the request-scoped permission context. The auth
// middleware loads the logged user (with company) and their membership
// rows once, builds a Context, and every rule evaluation afterwards is a
// pure lookup with no I/O.
package perm

import (
	"collab/dao/model"
)

type Context struct {
	user        *model.User
	memberships map[uint]*model.ProjectUser
}

var _ model.Actor = (*Context)(nil)

// NewContext builds the evaluator. user.Company must be preloaded; the
// membership slice is the user's ProjectUser rows.
func NewContext(user *model.User, memberships []model.ProjectUser) *Context {
	m := make(map[uint]*model.ProjectUser, len(memberships))
	for i := range memberships {
		m[memberships[i].ProjectID] = &memberships[i]
	}
	return &Context{user: user, memberships: m}
}

func (c *Context) User() *model.User {
	return c.user
}

func (c *Context) UserID() uint {
	return c.user.ID
}

func (c *Context) IsAdmin() bool {
	return c.user.IsAdmin
}

func (c *Context) MemberOfOwner() bool {
	return c.user.Company.IsOwner
}

func (c *Context) OwnerAdmin() bool {
	return c.MemberOfOwner() && c.user.IsAdmin
}

func (c *Context) HasMembership(projectID uint) bool {
	_, ok := c.memberships[projectID]
	return ok
}

func (c *Context) Membership(projectID uint) *model.ProjectUser {
	return c.memberships[projectID]
}

// HasPermission implements the bit check with the owner-company superset:
// owner admins pass unconditionally, owner-company members pass on any
// project they are a member of, everyone else needs the bit on their
// membership row. No membership row means deny.
func (c *Context) HasPermission(projectID uint, bit model.Permission) bool {
	if c.OwnerAdmin() {
		return true
	}
	m := c.memberships[projectID]
	if m == nil {
		return false
	}
	if c.MemberOfOwner() {
		return true
	}
	return m.Permissions.Has(bit)
}

// ProjectIDs lists the projects the actor is a member of, for scoping
// listing and search queries.
func (c *Context) ProjectIDs() []uint {
	ids := make([]uint, 0, len(c.memberships))
	for id := range c.memberships {
		ids = append(ids, id)
	}
	return ids
}
