package model

import (
	"testing"
	"time"

	"gorm.io/gorm"
)

// fakeActor is a hand-rolled Actor for rule tests; projects maps project
// id to the granted bitset, mirroring membership rows.
type fakeActor struct {
	id       uint
	admin    bool
	ownerCo  bool
	projects map[uint]Permission
}

func (f *fakeActor) UserID() uint { return f.id }
func (f *fakeActor) IsAdmin() bool { return f.admin }
func (f *fakeActor) MemberOfOwner() bool { return f.ownerCo }
func (f *fakeActor) OwnerAdmin() bool { return f.ownerCo && f.admin }

func (f *fakeActor) HasMembership(projectID uint) bool {
	_, ok := f.projects[projectID]
	return ok
}

func (f *fakeActor) HasPermission(projectID uint, bit Permission) bool {
	if f.OwnerAdmin() {
		return true
	}
	perms, ok := f.projects[projectID]
	if !ok {
		return false
	}
	if f.ownerCo {
		return true
	}
	return perms.Has(bit)
}

func member(id uint, projects map[uint]Permission) *fakeActor {
	return &fakeActor{id: id, projects: projects}
}

func activeProject(id uint) *Project {
	return &Project{Model: gorm.Model{ID: id}}
}

func completedProject(id uint) *Project {
	now := time.Now()
	return &Project{Model: gorm.Model{ID: id}, CompletedOn: &now}
}

func TestProjectVisibility(t *testing.T) {
	p := activeProject(1)

	if p.CanBeSeenBy(member(1, nil)) {
		t.Error("non-member saw the project")
	}
	if !p.CanBeSeenBy(member(1, map[uint]Permission{1: PermissionNone})) {
		t.Error("member denied project visibility")
	}
	if !p.CanBeSeenBy(&fakeActor{id: 2, admin: true, ownerCo: true}) {
		t.Error("owner admin denied project visibility")
	}
	if p.CanBeSeenBy(&fakeActor{id: 2, admin: true}) {
		t.Error("non-owner admin saw a project without membership")
	}
}

func TestCompletedProjectFreezesMutations(t *testing.T) {
	owner := &fakeActor{id: 1, admin: true, ownerCo: true}
	done := completedProject(1)

	if FolderCanBeCreatedBy(owner, done) {
		t.Error("folder created on a completed project")
	}
	if MessageCanBeCreatedBy(owner, done) {
		t.Error("message created on a completed project")
	}
	if FileCanBeCreatedBy(owner, done) {
		t.Error("file uploaded to a completed project")
	}
	if TimeCanBeCreatedBy(owner, done) {
		t.Error("time entry added to a completed project")
	}
	if MilestoneCanBeCreatedBy(owner, done) {
		t.Error("milestone created on a completed project")
	}
	if TaskListCanBeCreatedBy(owner, done) {
		t.Error("task list created on a completed project")
	}
}

func TestMessageCommentRules(t *testing.T) {
	m := &ProjectMessage{
		Model:           gorm.Model{ID: 1},
		ProjectID:       1,
		Project:         *activeProject(1),
		CommentsEnabled: true,
	}
	a := member(5, map[uint]Permission{1: PermissionNone})

	if !m.CommentCanBeAddedBy(a) {
		t.Error("member denied commenting on an open message")
	}

	m.CommentsEnabled = false
	if m.CommentCanBeAddedBy(a) {
		t.Error("comment allowed with comments disabled")
	}

	m.CommentsEnabled = true
	m.Project = *completedProject(1)
	if m.CommentCanBeAddedBy(a) {
		t.Error("comment allowed on a completed project")
	}
}

func TestPrivateRecordGating(t *testing.T) {
	outsider := member(5, map[uint]Permission{1: CanManageTime})
	ownerMember := &fakeActor{id: 6, ownerCo: true, projects: map[uint]Permission{1: PermissionNone}}

	msg := &ProjectMessage{ProjectID: 1, IsPrivate: true}
	if msg.CanBeSeenBy(outsider) {
		t.Error("private message visible outside the owner company")
	}
	if !msg.CanBeSeenBy(ownerMember) {
		t.Error("private message hidden from owner-company member")
	}

	entry := &ProjectTime{ProjectID: 1, IsPrivate: true}
	if entry.CanBeSeenBy(outsider) {
		t.Error("private time entry visible outside the owner company")
	}
	if !entry.CanBeSeenBy(ownerMember) {
		t.Error("private time entry hidden from owner-company member")
	}

	// times always need the manage bit, even for public rows
	noBit := member(7, map[uint]Permission{1: PermissionNone})
	public := &ProjectTime{ProjectID: 1}
	if public.CanBeSeenBy(noBit) {
		t.Error("time entry visible without the manage bit")
	}
}

func TestLockedFileRejectsComments(t *testing.T) {
	f := &ProjectFile{
		ProjectID: 1,
		Project:   *activeProject(1),
		IsLocked:  true,
	}
	a := member(5, map[uint]Permission{1: CanUploadFiles})
	if f.CommentCanBeAddedBy(a) {
		t.Error("comment allowed on a locked file")
	}
	f.IsLocked = false
	if !f.CommentCanBeAddedBy(a) {
		t.Error("comment denied on an unlocked file")
	}
}

func TestTaskAssigneeCanChangeStatus(t *testing.T) {
	task := &ProjectTask{ProjectID: 1, AssignedToUserID: 5}

	assignee := member(5, map[uint]Permission{1: PermissionNone})
	if !task.StatusCanBeChangedBy(assignee) {
		t.Error("assignee denied closing their own task")
	}

	other := member(6, map[uint]Permission{1: PermissionNone})
	if task.StatusCanBeChangedBy(other) {
		t.Error("unrelated member closed someone else's task")
	}

	manager := member(7, map[uint]Permission{1: CanManageTasks})
	if !task.StatusCanBeChangedBy(manager) {
		t.Error("task manager denied the status change")
	}
}

func TestUserRules(t *testing.T) {
	ownerAdmin := &fakeActor{id: 1, admin: true, ownerCo: true}
	plain := member(2, nil)

	if !UserCanBeCreatedBy(ownerAdmin) {
		t.Error("owner admin denied user creation")
	}
	if UserCanBeCreatedBy(plain) {
		t.Error("plain member allowed user creation")
	}

	u := &User{Model: gorm.Model{ID: 2}}
	if !u.ProfileCanBeUpdatedBy(plain) {
		t.Error("self-service profile edit denied")
	}
	if u.ProfileCanBeUpdatedBy(member(3, nil)) {
		t.Error("unrelated member edited someone else's profile")
	}

	self := &User{Model: gorm.Model{ID: 1}}
	if self.CanBeDeletedBy(ownerAdmin) {
		t.Error("actor deleted their own account")
	}
}

func TestCompanyAndMembershipProtections(t *testing.T) {
	ownerAdmin := &fakeActor{id: 1, admin: true, ownerCo: true}

	ownerCo := &Company{IsOwner: true}
	if ownerCo.CanBeDeletedBy(ownerAdmin) {
		t.Error("owner company was deletable")
	}

	p := activeProject(1)
	if p.CompanyCanBeRemovedBy(ownerCo, ownerAdmin) {
		t.Error("owner company was detachable from a project")
	}
	if !p.CompanyCanBeRemovedBy(&Company{}, ownerAdmin) {
		t.Error("client company not removable by owner admin")
	}

	protected := &User{IsAdmin: true, Company: Company{IsOwner: true}}
	if p.UserCanBeRemovedBy(protected, ownerAdmin) {
		t.Error("owner-company admin was removable from a project")
	}
	if !p.UserCanBeRemovedBy(&User{Company: Company{}}, ownerAdmin) {
		t.Error("regular user not removable by owner admin")
	}
}

func TestParsePermissions(t *testing.T) {
	p := ParsePermissions([]string{"can_manage_tasks", "can_upload_files", "bogus"})
	if !p.Has(CanManageTasks) || !p.Has(CanUploadFiles) {
		t.Error("named bits missing after parse")
	}
	if p.Has(CanManageMessages) {
		t.Error("unrequested bit granted")
	}
	if ParsePermissions(nil) != PermissionNone {
		t.Error("empty list produced a non-empty bitset")
	}
}
