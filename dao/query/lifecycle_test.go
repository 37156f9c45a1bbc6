package query

import (
	"testing"
	"time"

	"collab/dao/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func countLogs(t *testing.T, db *gorm.DB, objectType string, action model.LogAction) int64 {
	t.Helper()
	var n int64
	err := db.Model(&model.ApplicationLog{}).
		Where("rel_object_type = ? AND action = ?", objectType, action).
		Count(&n).Error
	if err != nil {
		t.Fatalf("count logs: %v", err)
	}
	return n
}

func TestCreateWritesOneAddLog(t *testing.T) {
	db := openTestDB(t)

	m := model.ProjectMessage{Title: "kickoff", ProjectID: 5, CreatedByID: 2}
	if err := Create(db, 2, &m); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	var logs []model.ApplicationLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d log rows, want 1", len(logs))
	}
	l := logs[0]
	if l.Action != model.ActionAdd {
		t.Errorf("action = %v, want add", l.Action)
	}
	if l.RelObjectType != "ProjectMessage" || l.RelObjectID != m.ID {
		t.Errorf("log points at %s/%d, want ProjectMessage/%d", l.RelObjectType, l.RelObjectID, m.ID)
	}
	if l.ObjectName != "kickoff" || l.ProjectID != 5 || l.CreatedByID != 2 {
		t.Errorf("log row = %+v, captured fields wrong", l)
	}
}

func TestCreateProjectForcesActive(t *testing.T) {
	db := openTestDB(t)

	now := time.Now()
	p := model.Project{Name: "new", CompletedOn: &now, CompletedByID: 9}
	if err := Create(db, 1, &p); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if p.CompletedOn != nil || p.CompletedByID != 0 {
		t.Error("project arrived completed; completion fields must be cleared on create")
	}

	var stored model.Project
	if err := db.First(&stored, p.ID).Error; err != nil {
		t.Fatalf("reload project: %v", err)
	}
	if stored.CompletedOn != nil {
		t.Error("stored project has completed_on set after create")
	}
}

func TestUpdateWritesEditLog(t *testing.T) {
	db := openTestDB(t)

	m := model.ProjectMilestone{Name: "beta", ProjectID: 1, DueDate: time.Now()}
	if err := Create(db, 1, &m); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	m.Name = "beta 2"
	if err := Update(db, 1, &m); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if n := countLogs(t, db, "ProjectMilestone", model.ActionEdit); n != 1 {
		t.Errorf("got %d edit logs, want 1", n)
	}
}

func TestSetCompletedTransitions(t *testing.T) {
	db := openTestDB(t)

	m := model.ProjectMilestone{Name: "ship", ProjectID: 1, DueDate: time.Now()}
	if err := Create(db, 3, &m); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := SetCompleted(db, 3, &m, true); err != nil {
		t.Fatalf("SetCompleted(close) error: %v", err)
	}
	if m.CompletedOn == nil || m.CompletedByID != 3 {
		t.Error("close did not stamp completion fields")
	}
	if n := countLogs(t, db, "ProjectMilestone", model.ActionClose); n != 1 {
		t.Errorf("got %d close logs, want 1", n)
	}

	if err := SetCompleted(db, 3, &m, false); err != nil {
		t.Fatalf("SetCompleted(open) error: %v", err)
	}
	if m.CompletedOn != nil || m.CompletedByID != 0 {
		t.Error("reopen did not clear completion fields")
	}
	if n := countLogs(t, db, "ProjectMilestone", model.ActionOpen); n != 1 {
		t.Errorf("got %d open logs, want 1", n)
	}
}

func TestLogSilentExcludedFromFeeds(t *testing.T) {
	db := openTestDB(t)

	p := model.Project{Name: "staffed"}
	if err := Create(db, 1, &p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	if err := LogSilent(db, 1, &p, model.ActionEdit); err != nil {
		t.Fatalf("LogSilent() error: %v", err)
	}

	var l model.ApplicationLog
	if err := db.Where("action = ?", model.ActionEdit).First(&l).Error; err != nil {
		t.Fatalf("load silent log: %v", err)
	}
	if !l.IsSilent {
		t.Error("silent entry not flagged")
	}
	if l.RelObjectType != "Project" || l.RelObjectID != p.ID {
		t.Errorf("silent log points at %s/%d, want Project/%d", l.RelObjectType, l.RelObjectID, p.ID)
	}

	// the feed predicate must keep the silent row out
	var visible int64
	db.Model(&model.ApplicationLog{}).
		Where("project_id = ? AND is_silent = ?", p.ID, false).Count(&visible)
	if visible != 1 {
		t.Errorf("feed sees %d rows, want only the add entry", visible)
	}
}

func TestDestroyWritesDeleteLog(t *testing.T) {
	db := openTestDB(t)

	m := model.ProjectMessage{Title: "old", ProjectID: 1}
	if err := Create(db, 1, &m); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := Destroy(db, 1, &m); err != nil {
		t.Fatalf("Destroy() error: %v", err)
	}

	var n int64
	db.Model(&model.ProjectMessage{}).Count(&n)
	if n != 0 {
		t.Errorf("message still visible after destroy")
	}
	if n := countLogs(t, db, "ProjectMessage", model.ActionDelete); n != 1 {
		t.Errorf("got %d delete logs, want 1", n)
	}
}

func TestDestroyProjectCascade(t *testing.T) {
	db := openTestDB(t)

	p := model.Project{Name: "doomed"}
	if err := Create(db, 1, &p); err != nil {
		t.Fatalf("create project: %v", err)
	}

	msg := model.ProjectMessage{Title: "m", ProjectID: p.ID}
	file := model.ProjectFile{Filename: "f", ProjectID: p.ID, IsVisible: true}
	seeds := []model.Loggable{
		&msg,
		&file,
		&model.ProjectFolder{Name: "docs", ProjectID: p.ID},
		&model.ProjectMilestone{Name: "v1", ProjectID: p.ID, DueDate: time.Now()},
		&model.ProjectTaskList{Name: "todo", ProjectID: p.ID},
		&model.ProjectTask{Text: "do it", ProjectID: p.ID},
		&model.ProjectTime{Name: "work", Hours: 2, ProjectID: p.ID},
		&model.Comment{Text: "hi", RelObjectType: "ProjectMessage", ProjectID: p.ID},
		&model.WikiPage{Title: "Home", Slug: "home", ProjectID: p.ID},
	}
	for _, rec := range seeds {
		if err := Create(db, 1, rec); err != nil {
			t.Fatalf("seed %s: %v", rec.ObjectType(), err)
		}
	}
	if err := db.Create(&model.ProjectUser{UserID: 4, ProjectID: p.ID}).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}
	if err := db.Create(&model.MessageSubscription{UserID: 4, MessageID: msg.ID}).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
	if err := db.Create(&model.AttachedFile{RelObjectType: "Comment", RelObjectID: 1, FileID: file.ID}).Error; err != nil {
		t.Fatalf("seed attachment: %v", err)
	}

	if err := DestroyProject(db, 1, &p); err != nil {
		t.Fatalf("DestroyProject() error: %v", err)
	}

	remaining := map[string]any{
		"projects":              &model.Project{},
		"messages":              &model.ProjectMessage{},
		"files":                 &model.ProjectFile{},
		"folders":               &model.ProjectFolder{},
		"milestones":            &model.ProjectMilestone{},
		"task lists":            &model.ProjectTaskList{},
		"tasks":                 &model.ProjectTask{},
		"times":                 &model.ProjectTime{},
		"comments":              &model.Comment{},
		"wiki pages":            &model.WikiPage{},
		"memberships":           &model.ProjectUser{},
		"message subscriptions": &model.MessageSubscription{},
		"attached files":        &model.AttachedFile{},
	}
	for name, rec := range remaining {
		var n int64
		if err := db.Model(rec).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if n != 0 {
			t.Errorf("%d %s survived the cascade", n, name)
		}
	}

	// the delete entry must survive the log cascade
	var logs []model.ApplicationLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d surviving log rows, want only the project delete entry", len(logs))
	}
	l := logs[0]
	if l.Action != model.ActionDelete || l.RelObjectType != "Project" || l.RelObjectID != p.ID {
		t.Errorf("surviving log = %+v, want project delete entry", l)
	}
	if l.ProjectID != 0 {
		t.Errorf("delete entry still scoped to project %d, want 0", l.ProjectID)
	}
}

func TestDestroyUserRemovesMemberships(t *testing.T) {
	db := openTestDB(t)

	u := model.User{Username: "carol"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := db.Create(&model.ProjectUser{UserID: u.ID, ProjectID: 8}).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}

	if err := DestroyUser(db, 1, &u); err != nil {
		t.Fatalf("DestroyUser() error: %v", err)
	}

	var n int64
	db.Model(&model.ProjectUser{}).Where("user_id = ?", u.ID).Count(&n)
	if n != 0 {
		t.Error("membership rows survived user destroy")
	}
	if n := countLogs(t, db, "User", model.ActionDelete); n != 1 {
		t.Errorf("got %d delete logs, want 1", n)
	}
}
