package service

import (
	"reflect"
	"testing"

	"collab/dao/model"
)

func TestAnonymousCommentAllowed(t *testing.T) {
	tests := []struct {
		name string
		rec  model.Commentable
		want bool
	}{
		{"message with opt-in", &model.ProjectMessage{AnonymousCommentsEnabled: true}, true},
		{"message without opt-in", &model.ProjectMessage{}, false},
		{"milestone", &model.ProjectMilestone{}, false},
		{"file", &model.ProjectFile{}, false},
		{"task", &model.ProjectTask{}, false},
		{"task list", &model.ProjectTaskList{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := anonymousCommentAllowed(tt.rec); got != tt.want {
				t.Errorf("anonymousCommentAllowed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommentRecipients(t *testing.T) {
	msg := &model.ProjectMessage{
		Subscriptions: []model.MessageSubscription{
			{UserID: 1}, {UserID: 2}, {UserID: 3},
		},
	}
	got := commentRecipients(msg, 2)
	want := []uint{1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("commentRecipients() = %v, want %v", got, want)
	}

	if got := commentRecipients(&model.ProjectFile{}, 1); got != nil {
		t.Errorf("file recipients = %v, want none", got)
	}

	solo := &model.ProjectMessage{Subscriptions: []model.MessageSubscription{{UserID: 7}}}
	if got := commentRecipients(solo, 7); got != nil {
		t.Errorf("author-only thread recipients = %v, want none", got)
	}
}
