package model

import "time"

// Actor is the request-scoped view of the logged user that permission
// rules evaluate against. It is built once per request from the user, the
// user's company, and the user's ProjectUser rows, so every rule below is
// a deterministic function with no I/O.
type Actor interface {
	UserID() uint
	IsAdmin() bool

	// MemberOfOwner reports membership in the distinguished owner company,
	// which grants cross-project visibility of private records.
	MemberOfOwner() bool

	// OwnerAdmin is the superset privilege: an admin of the owner company
	// passes every project-scoped check without explicit permission bits.
	OwnerAdmin() bool

	// HasMembership reports whether a ProjectUser row exists for the
	// project. Absence means no membership.
	HasMembership(projectID uint) bool

	// HasPermission reports whether the actor holds the permission bit on
	// the project. Owner-company members with a membership row pass
	// without the bit; owner admins pass unconditionally.
	HasPermission(projectID uint, bit Permission) bool
}

// Loggable is implemented by every entity that emits audit-log rows.
type Loggable interface {
	ObjectID() uint
	ObjectType() string
	ObjectName() string

	// ProjectScope is the owning project id, or zero for site-wide
	// entities (users, companies, the projects themselves on deletion).
	ProjectScope() uint

	// PrivateRecord scopes the log row: private rows are hidden from
	// actors outside the owner company.
	PrivateRecord() bool
}

// Completable is implemented by entities with a completion transition
// (projects, milestones, task lists, tasks).
type Completable interface {
	Loggable
	Completed() bool
	SetCompleted(on *time.Time, byID uint)
}

// Commentable is the closed set of entities comments attach to: messages,
// milestones, files, tasks and task lists. Each variant carries its own
// visibility and comment-permission rules.
type Commentable interface {
	Loggable
	CanBeSeenBy(a Actor) bool
	CommentCanBeAddedBy(a Actor) bool

	// SubscriberIDs are the users to notify when a comment is added.
	// Requires the relevant association to be preloaded; only messages
	// have explicit subscriptions today.
	SubscriberIDs() []uint
}
