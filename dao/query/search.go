package query

import (
	"strings"

	"gorm.io/gorm"
)

// SearchOptions carries the actor-derived scope for a search call.
type SearchOptions struct {
	// Enabled mirrors the search section of the config; when false the
	// call returns an empty result set and zero total, never an error.
	Enabled bool

	// IncludePrivate is true for owner-company actors.
	IncludePrivate bool

	// ProjectIDs limits the scan to projects the actor can see.
	ProjectIDs []uint

	Limit int
}

type SearchResult struct {
	ObjectType string `json:"objectType"`
	ObjectID   uint   `json:"objectId"`
	ProjectID  uint   `json:"projectId"`
	Title      string `json:"title"`
}

// search targets: one probe per entity kind with a searchable title.
var searchProbes = []struct {
	table      string
	objectType string
	titleCol   string
	hasPrivate bool
}{
	{"project_messages", "ProjectMessage", "title", true},
	{"project_files", "ProjectFile", "filename", true},
	{"project_milestones", "ProjectMilestone", "name", true},
	{"project_task_lists", "ProjectTaskList", "name", true},
	{"wiki_pages", "WikiPage", "title", false},
}

// Search scans titles across the scoped projects with a LIKE match; ranked
// relevance is not part of the contract.
func Search(db *gorm.DB, term string, opts SearchOptions) ([]SearchResult, int64, error) {
	results := []SearchResult{}
	if !opts.Enabled || len(opts.ProjectIDs) == 0 || strings.TrimSpace(term) == "" {
		return results, 0, nil
	}

	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"

	for _, probe := range searchProbes {
		var batch []SearchResult
		q := db.Table(probe.table).
			Select("? as object_type, id as object_id, project_id, "+probe.titleCol+" as title", probe.objectType).
			Where("project_id IN ?", opts.ProjectIDs).
			Where("deleted_at IS NULL").
			Where("LOWER("+probe.titleCol+") LIKE ?", pattern)
		if probe.hasPrivate && !opts.IncludePrivate {
			q = q.Where("is_private = ?", false)
		}
		if err := q.Limit(opts.Limit - len(results)).Scan(&batch).Error; err != nil {
			return nil, 0, err
		}
		results = append(results, batch...)
		if len(results) >= opts.Limit {
			break
		}
	}

	return results, int64(len(results)), nil
}
