package service

import (
	"strconv"

	"collab/dao/model"
	"collab/dao/query"

	"github.com/pkg/errors"
)

// commentKeys is the closed set of request parameters that can name a
// commented object, checked in this order.
var commentKeys = []string{"message_id", "milestone_id", "file_id", "task_id", "task_list_id"}

var (
	errNoCommentKey       = errors.New("no commentable object specified")
	errAmbiguousComment   = errors.New("more than one commentable object specified")
	errBadCommentKeyValue = errors.New("commentable object id is not a positive integer")
)

// findCommentKey resolves which object a comment request targets. Exactly
// one of the known keys must be present with a positive integer value;
// zero or several keys reject the request outright.
func findCommentKey(lookup func(string) string) (key string, id uint, err error) {
	for _, k := range commentKeys {
		raw := lookup(k)
		if raw == "" {
			continue
		}
		if key != "" {
			return "", 0, errAmbiguousComment
		}
		v, perr := strconv.ParseUint(raw, 10, 32)
		if perr != nil || v == 0 {
			return "", 0, errBadCommentKeyValue
		}
		key, id = k, uint(v)
	}
	if key == "" {
		return "", 0, errNoCommentKey
	}
	return key, id, nil
}

// anonymousCommentAllowed reports whether the commented object accepts
// anonymous authorship. Only messages carry the opt-in; every other
// variant rejects it.
func anonymousCommentAllowed(rec model.Commentable) bool {
	msg, isMsg := rec.(*model.ProjectMessage)
	return isMsg && msg.AnonymousCommentsEnabled
}

// commentRecipients lists the subscribers to notify about a new comment,
// leaving out its author.
func commentRecipients(rec model.Commentable, authorID uint) []uint {
	var ids []uint
	for _, id := range rec.SubscriberIDs() {
		if id != authorID {
			ids = append(ids, id)
		}
	}
	return ids
}

// loadCommentable fetches the record named by a comment key. The Project
// association is preloaded since the per-object comment rules consult it.
func loadCommentable(key string, id uint) (model.Commentable, error) {
	switch key {
	case "message_id":
		var m model.ProjectMessage
		if err := query.DB.Preload("Project").Preload("Subscriptions").First(&m, id).Error; err != nil {
			return nil, err
		}
		return &m, nil
	case "milestone_id":
		var m model.ProjectMilestone
		if err := query.DB.Preload("Project").First(&m, id).Error; err != nil {
			return nil, err
		}
		return &m, nil
	case "file_id":
		var f model.ProjectFile
		if err := query.DB.Preload("Project").First(&f, id).Error; err != nil {
			return nil, err
		}
		return &f, nil
	case "task_id":
		var t model.ProjectTask
		if err := query.DB.Preload("TaskList.Project").First(&t, id).Error; err != nil {
			return nil, err
		}
		return &t, nil
	case "task_list_id":
		var tl model.ProjectTaskList
		if err := query.DB.Preload("Project").First(&tl, id).Error; err != nil {
			return nil, err
		}
		return &tl, nil
	}
	return nil, errors.Errorf("unknown comment key %q", key)
}
