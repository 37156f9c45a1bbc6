package service

import (
	"time"

	"collab/dao/model"
	"collab/dao/query"
	"collab/response"

	"github.com/gin-gonic/gin"
)

type MilestoneReq struct {
	Name                string    `json:"name" binding:"required"`
	Description         string    `json:"description"`
	DueDate             time.Time `json:"dueDate" binding:"required"`
	AssignedToUserID    uint      `json:"assignedToUserId"`
	AssignedToCompanyID uint      `json:"assignedToCompanyId"`
	IsPrivate           bool      `json:"isPrivate"`
}

type MilestoneResp struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	DueDate          time.Time  `json:"dueDate"`
	CompletedOn      *time.Time `json:"completedOn"`
	AssignedToUserID uint       `json:"assignedToUserId"`
	IsPrivate        bool       `json:"isPrivate"`
	IsLate           bool       `json:"isLate"`
	ProjectID        uint       `json:"projectId"`
	CreatedByID      uint       `json:"createdById"`
}

func milestoneResp(m *model.ProjectMilestone) MilestoneResp {
	return MilestoneResp{
		ID:               m.ID,
		Name:             m.Name,
		Description:      m.Description,
		DueDate:          m.DueDate,
		CompletedOn:      m.CompletedOn,
		AssignedToUserID: m.AssignedToUserID,
		IsPrivate:        m.IsPrivate,
		IsLate:           m.IsLate(),
		ProjectID:        m.ProjectID,
		CreatedByID:      m.CreatedByID,
	}
}

// ListMilestones supports filter=open|late|upcoming|completed, defaulting
// to everything visible.
func ListMilestones(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)

	q := query.DB.Where("project_id = ?", p.ID)
	if !pc.MemberOfOwner() {
		q = q.Where("is_private = ?", false)
	}
	switch c.Query("filter") {
	case "open":
		q = q.Where("completed_on IS NULL").Order("due_date ASC")
	case "late":
		q = q.Where("completed_on IS NULL AND due_date < ?", time.Now()).Order("due_date ASC")
	case "upcoming":
		q = q.Where("completed_on IS NULL AND due_date >= ?", time.Now()).Order("due_date ASC")
	case "completed":
		q = q.Where("completed_on IS NOT NULL").Order("completed_on DESC")
	default:
		q = q.Order("due_date ASC")
	}

	var milestones []model.ProjectMilestone
	if err := q.Find(&milestones).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	resp := make([]MilestoneResp, 0, len(milestones))
	for i := range milestones {
		resp = append(resp, milestoneResp(&milestones[i]))
	}
	response.Success(c, resp)
}

func CreateMilestone(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !model.MilestoneCanBeCreatedBy(pc, p) {
		response.PermissionError(c)
		return
	}

	var req MilestoneReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	m := model.ProjectMilestone{
		Name:                req.Name,
		Description:         req.Description,
		DueDate:             req.DueDate,
		AssignedToUserID:    req.AssignedToUserID,
		AssignedToCompanyID: req.AssignedToCompanyID,
		IsPrivate:           req.IsPrivate,
		ProjectID:           p.ID,
		CreatedByID:         pc.UserID(),
	}
	if err := query.Create(query.DB, pc.UserID(), &m); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, milestoneResp(&m))
}

func GetMilestone(c *gin.Context) {
	m, ok := obtainMilestone(c)
	if !ok {
		return
	}
	response.Success(c, milestoneResp(m))
}

func UpdateMilestone(c *gin.Context) {
	m, ok := obtainMilestone(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !m.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req MilestoneReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	m.Name = req.Name
	m.Description = req.Description
	m.DueDate = req.DueDate
	m.AssignedToUserID = req.AssignedToUserID
	m.AssignedToCompanyID = req.AssignedToCompanyID
	m.IsPrivate = req.IsPrivate
	m.UpdatedByID = pc.UserID()

	if err := query.Update(query.DB, pc.UserID(), m); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, milestoneResp(m))
}

func DeleteMilestone(c *gin.Context) {
	m, ok := obtainMilestone(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !m.CanBeDeletedBy(pc) {
		response.PermissionError(c)
		return
	}
	if err := query.Destroy(query.DB, pc.UserID(), m); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

func completeMilestone(c *gin.Context, done bool) {
	m, ok := obtainMilestone(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !m.StatusCanBeChangedBy(pc) {
		response.PermissionError(c)
		return
	}
	if err := query.SetCompleted(query.DB, pc.UserID(), m, done); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, milestoneResp(m))
}

func CompleteMilestone(c *gin.Context) { completeMilestone(c, true) }
func OpenMilestone(c *gin.Context) { completeMilestone(c, false) }

func obtainMilestone(c *gin.Context) (*model.ProjectMilestone, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var m model.ProjectMilestone
	if err := query.DB.Preload("Project").First(&m, id).Error; err != nil {
		response.NotFoundError(c, "milestone not found", response.InvalidObject)
		return nil, false
	}
	if !m.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return nil, false
	}
	return &m, true
}

func RegisterMilestone(g *gin.RouterGroup) {
	g.GET("/projects/:project_id/milestones", ListMilestones)
	g.POST("/projects/:project_id/milestones", CreateMilestone)
	g.GET("/milestones/:id", GetMilestone)
	g.PUT("/milestones/:id", UpdateMilestone)
	g.DELETE("/milestones/:id", DeleteMilestone)
	g.PUT("/milestones/:id/complete", CompleteMilestone)
	g.PUT("/milestones/:id/open", OpenMilestone)
}
