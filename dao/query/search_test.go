package query

import (
	"testing"
	"time"

	"collab/dao/model"
)

func TestSearchDisabled(t *testing.T) {
	db := openTestDB(t)

	if err := db.Create(&model.ProjectMessage{Title: "release notes", ProjectID: 1}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	results, total, err := Search(db, "release", SearchOptions{
		Enabled:    false,
		ProjectIDs: []uint{1},
	})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 0 || total != 0 {
		t.Errorf("disabled search returned %d results (total %d), want none", len(results), total)
	}
}

func TestSearchEmptyTerm(t *testing.T) {
	db := openTestDB(t)

	results, total, err := Search(db, "   ", SearchOptions{Enabled: true, ProjectIDs: []uint{1}})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 0 || total != 0 {
		t.Error("blank term must return an empty result set")
	}
}

func TestSearchScopesAndPrivacy(t *testing.T) {
	db := openTestDB(t)

	rows := []any{
		&model.ProjectMessage{Title: "Release plan", ProjectID: 1},
		&model.ProjectMessage{Title: "Release budget", ProjectID: 1, IsPrivate: true},
		&model.ProjectMessage{Title: "Release gossip", ProjectID: 2},
		&model.ProjectMilestone{Name: "Release candidate", ProjectID: 1, DueDate: time.Now()},
		&model.WikiPage{Title: "Release checklist", Slug: "release-checklist", ProjectID: 1},
	}
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// non-owner actor scoped to project 1: no private rows, no project 2
	results, total, err := Search(db, "release", SearchOptions{
		Enabled:    true,
		ProjectIDs: []uint{1},
	})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if total != 3 {
		t.Fatalf("got %d results, want 3 (message, milestone, wiki page): %+v", total, results)
	}
	for _, r := range results {
		if r.ProjectID != 1 {
			t.Errorf("result from project %d leaked into scope", r.ProjectID)
		}
		if r.Title == "Release budget" {
			t.Error("private row leaked to non-owner actor")
		}
	}

	// owner actor sees the private row too
	_, total, err = Search(db, "release", SearchOptions{
		Enabled:        true,
		IncludePrivate: true,
		ProjectIDs:     []uint{1},
	})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if total != 4 {
		t.Errorf("owner-scoped search got %d results, want 4", total)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	db := openTestDB(t)

	if err := db.Create(&model.ProjectFile{Filename: "Budget.XLSX", ProjectID: 1, IsVisible: true}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	results, total, err := Search(db, "budget", SearchOptions{Enabled: true, ProjectIDs: []uint{1}})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if total != 1 || results[0].ObjectType != "ProjectFile" {
		t.Errorf("case-insensitive match failed: total=%d results=%+v", total, results)
	}
}
