package perm

import (
	"testing"

	"collab/dao/model"

	"gorm.io/gorm"
)

func makeUser(id uint, admin, ownerCompany bool) *model.User {
	return &model.User{
		Model:   gorm.Model{ID: id},
		IsAdmin: admin,
		Company: model.Company{IsOwner: ownerCompany},
	}
}

func membership(projectID uint, perms model.Permission) model.ProjectUser {
	return model.ProjectUser{ProjectID: projectID, Permissions: perms}
}

func TestHasPermission(t *testing.T) {
	const projectID = 7

	tests := []struct {
		name        string
		user        *model.User
		memberships []model.ProjectUser
		bit         model.Permission
		want        bool
	}{
		{
			name: "no membership denies",
			user: makeUser(1, false, false),
			bit:  model.CanManageTasks,
			want: false,
		},
		{
			name:        "bit granted passes",
			user:        makeUser(1, false, false),
			memberships: []model.ProjectUser{membership(projectID, model.CanManageTasks)},
			bit:         model.CanManageTasks,
			want:        true,
		},
		{
			name:        "bit missing denies",
			user:        makeUser(1, false, false),
			memberships: []model.ProjectUser{membership(projectID, model.CanManageMessages)},
			bit:         model.CanManageTasks,
			want:        false,
		},
		{
			name:        "owner company member passes without the bit",
			user:        makeUser(1, false, true),
			memberships: []model.ProjectUser{membership(projectID, model.PermissionNone)},
			bit:         model.CanManageTasks,
			want:        true,
		},
		{
			name: "owner company member without membership denies",
			user: makeUser(1, false, true),
			bit:  model.CanManageTasks,
			want: false,
		},
		{
			name: "owner admin passes without membership",
			user: makeUser(1, true, true),
			bit:  model.CanManageTasks,
			want: true,
		},
		{
			name:        "non-owner admin still needs the bit",
			user:        makeUser(1, true, false),
			memberships: []model.ProjectUser{membership(projectID, model.PermissionNone)},
			bit:         model.CanManageTasks,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := NewContext(tt.user, tt.memberships)
			if got := pc.HasPermission(projectID, tt.bit); got != tt.want {
				t.Errorf("HasPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasMembership(t *testing.T) {
	pc := NewContext(makeUser(1, false, false), []model.ProjectUser{membership(3, model.CanManageTasks)})

	if !pc.HasMembership(3) {
		t.Error("expected membership on project 3")
	}
	if pc.HasMembership(4) {
		t.Error("unexpected membership on project 4")
	}
}

func TestOwnerAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *model.User
		want bool
	}{
		{"owner company admin", makeUser(1, true, true), true},
		{"owner company member", makeUser(1, false, true), false},
		{"admin of other company", makeUser(1, true, false), false},
		{"plain member", makeUser(1, false, false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := NewContext(tt.user, nil)
			if got := pc.OwnerAdmin(); got != tt.want {
				t.Errorf("OwnerAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectIDs(t *testing.T) {
	pc := NewContext(makeUser(1, false, false), []model.ProjectUser{
		membership(3, model.PermissionNone),
		membership(9, model.CanManageTasks),
	})
	ids := pc.ProjectIDs()
	if len(ids) != 2 {
		t.Fatalf("ProjectIDs() returned %d ids, want 2", len(ids))
	}
	seen := map[uint]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[3] || !seen[9] {
		t.Errorf("ProjectIDs() = %v, want projects 3 and 9", ids)
	}
}
