package service

import (
	"time"

	"collab/dao/model"
	"collab/dao/query"
	"collab/response"

	"github.com/gin-gonic/gin"
)

type LogResp struct {
	ID          uint      `json:"id"`
	Action      string    `json:"action"`
	ObjectType  string    `json:"objectType"`
	ObjectID    uint      `json:"objectId"`
	ObjectName  string    `json:"objectName"`
	ProjectID   uint      `json:"projectId"`
	CreatedByID uint      `json:"createdById"`
	CreatedOn   time.Time `json:"createdOn"`
}

func logResp(l *model.ApplicationLog) LogResp {
	return LogResp{
		ID:          l.ID,
		Action:      l.Action.String(),
		ObjectType:  l.RelObjectType,
		ObjectID:    l.RelObjectID,
		ObjectName:  l.ObjectName,
		ProjectID:   l.ProjectID,
		CreatedByID: l.CreatedByID,
		CreatedOn:   l.CreatedAt,
	}
}

// ListProjectActivity is the project activity feed, newest first. Silent
// entries never appear; private entries only for owner-company members.
func ListProjectActivity(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)

	q := query.DB.Where("project_id = ? AND is_silent = ?", p.ID, false)
	if !pc.MemberOfOwner() {
		q = q.Where("is_private = ?", false)
	}

	var logs []model.ApplicationLog
	if err := q.Order("created_at DESC").Limit(50).Find(&logs).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	resp := make([]LogResp, 0, len(logs))
	for i := range logs {
		resp = append(resp, logResp(&logs[i]))
	}
	response.Success(c, resp)
}

// ListActivity is the cross-project feed scoped to the actor's projects;
// owner admins see everything.
func ListActivity(c *gin.Context) {
	pc := permContext(c)

	q := query.DB.Where("is_silent = ?", false)
	if !pc.OwnerAdmin() {
		q = q.Where("project_id IN ?", append(pc.ProjectIDs(), 0))
	}
	if !pc.MemberOfOwner() {
		q = q.Where("is_private = ?", false)
	}

	var logs []model.ApplicationLog
	if err := q.Order("created_at DESC").Limit(50).Find(&logs).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	resp := make([]LogResp, 0, len(logs))
	for i := range logs {
		resp = append(resp, logResp(&logs[i]))
	}
	response.Success(c, resp)
}

func RegisterLog(g *gin.RouterGroup) {
	g.GET("/projects/:project_id/activity", ListProjectActivity)
	g.GET("/activity", ListActivity)
}
