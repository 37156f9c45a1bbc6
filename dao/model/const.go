package model

// Audit log action kinds
type LogAction uint8

const (
	_            LogAction = iota
	ActionAdd              // entity created
	ActionEdit             // entity attributes changed
	ActionClose            // completion transition (completed_on set)
	ActionOpen             // completion cleared
	ActionDelete           // entity destroyed
)

func (a LogAction) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionEdit:
		return "edit"
	case ActionClose:
		return "close"
	case ActionOpen:
		return "open"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// Permission is the per (user, project) capability bitset stored on
// ProjectUser. Owner-company members never need these bits; see Actor.
type Permission uint16

const (
	CanManageMessages Permission = 1 << iota
	CanManageTasks
	CanManageMilestones
	CanManageTime
	CanManageFiles
	CanUploadFiles
	CanAssignToOwners
	CanAssignToOther
)

const PermissionNone Permission = 0

func (p Permission) Has(bit Permission) bool {
	return p&bit != 0
}

func (p Permission) Grant(bit Permission) Permission {
	return p | bit
}

// PermissionNames maps the wire/form names to bits, in the order the
// administration screens list them.
func PermissionNames() map[string]Permission {
	return map[string]Permission{
		"can_manage_messages":   CanManageMessages,
		"can_manage_tasks":      CanManageTasks,
		"can_manage_milestones": CanManageMilestones,
		"can_manage_time":       CanManageTime,
		"can_manage_files":      CanManageFiles,
		"can_upload_files":      CanUploadFiles,
		"can_assign_to_owners":  CanAssignToOwners,
		"can_assign_to_other":   CanAssignToOther,
	}
}

// ParsePermissions folds a list of wire names into a bitset. Unknown names
// are ignored, matching the tolerant form handling of the admin screens.
func ParsePermissions(names []string) Permission {
	table := PermissionNames()
	var p Permission
	for _, name := range names {
		if bit, ok := table[name]; ok {
			p = p.Grant(bit)
		}
	}
	return p
}

const InvalidUserID = 0
