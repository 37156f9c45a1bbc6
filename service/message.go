package service

import (
	"time"

	"collab/dao/model"
	"collab/dao/query"
	"collab/response"

	"github.com/gin-gonic/gin"
)

type MessageReq struct {
	Title                    string `json:"title" binding:"required"`
	Text                     string `json:"text"`
	CategoryID               uint   `json:"categoryId"`
	MilestoneID              uint   `json:"milestoneId"`
	IsPrivate                bool   `json:"isPrivate"`
	IsImportant              bool   `json:"isImportant"`
	CommentsEnabled          bool   `json:"commentsEnabled"`
	AnonymousCommentsEnabled bool   `json:"anonymousCommentsEnabled"`
}

type MessageResp struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	ProjectID   uint      `json:"projectId"`
	CategoryID  uint      `json:"categoryId"`
	IsPrivate   bool      `json:"isPrivate"`
	IsImportant bool      `json:"isImportant"`
	CreatedByID uint      `json:"createdById"`
	CreatedOn   time.Time `json:"createdOn"`
}

func messageResp(m *model.ProjectMessage) MessageResp {
	return MessageResp{
		ID:          m.ID,
		Title:       m.Title,
		Text:        m.Text,
		ProjectID:   m.ProjectID,
		CategoryID:  m.CategoryID,
		IsPrivate:   m.IsPrivate,
		IsImportant: m.IsImportant,
		CreatedByID: m.CreatedByID,
		CreatedOn:   m.CreatedAt,
	}
}

func ListMessages(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)

	q := query.DB.Where("project_id = ?", p.ID)
	if !pc.MemberOfOwner() {
		q = q.Where("is_private = ?", false)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}

	var messages []model.ProjectMessage
	if err := q.Order("created_at DESC").Find(&messages).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	resp := make([]MessageResp, 0, len(messages))
	for i := range messages {
		resp = append(resp, messageResp(&messages[i]))
	}
	response.Success(c, resp)
}

func CreateMessage(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !model.MessageCanBeCreatedBy(pc, p) {
		response.PermissionError(c)
		return
	}

	var req MessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	m := model.ProjectMessage{
		Title:                    req.Title,
		Text:                     req.Text,
		ProjectID:                p.ID,
		CategoryID:               req.CategoryID,
		MilestoneID:              req.MilestoneID,
		IsPrivate:                req.IsPrivate,
		IsImportant:              req.IsImportant,
		CommentsEnabled:          req.CommentsEnabled,
		AnonymousCommentsEnabled: req.AnonymousCommentsEnabled,
		CreatedByID:              pc.UserID(),
	}
	if err := query.Create(query.DB, pc.UserID(), &m); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	// the author follows their own thread
	ensureSubscribed(pc.UserID(), m.ID)
	response.Success(c, messageResp(&m))
}

func GetMessage(c *gin.Context) {
	m, ok := obtainMessage(c)
	if !ok {
		return
	}
	response.Success(c, messageResp(m))
}

func UpdateMessage(c *gin.Context) {
	m, ok := obtainMessage(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !m.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req MessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	m.Title = req.Title
	m.Text = req.Text
	m.CategoryID = req.CategoryID
	m.MilestoneID = req.MilestoneID
	m.IsPrivate = req.IsPrivate
	m.IsImportant = req.IsImportant
	m.CommentsEnabled = req.CommentsEnabled
	m.AnonymousCommentsEnabled = req.AnonymousCommentsEnabled
	m.UpdatedByID = pc.UserID()

	if err := query.Update(query.DB, pc.UserID(), m); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, messageResp(m))
}

func DeleteMessage(c *gin.Context) {
	m, ok := obtainMessage(c)
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

func SubscribeMessage(c *gin.Context) {
	m, ok := obtainMessage(c)
	if !ok {
		return
	}
	ensureSubscribed(permContext(c).UserID(), m.ID)
	response.Success(c, nil)
}

func UnsubscribeMessage(c *gin.Context) {
	m, ok := obtainMessage(c)
	if !ok {
		return
	}
	query.DB.Where("user_id = ? AND message_id = ?", permContext(c).UserID(), m.ID).
		Delete(&model.MessageSubscription{})
	response.Success(c, nil)
}

func ensureSubscribed(userID, messageID uint) {
	sub := model.MessageSubscription{UserID: userID, MessageID: messageID}
	query.DB.Where("user_id = ? AND message_id = ?", userID, messageID).
		FirstOrCreate(&sub)
}

type CategoryReq struct {
	Name string `json:"name" binding:"required"`
}

func ListMessageCategories(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	var categories []model.ProjectMessageCategory
	if err := query.DB.Where("project_id = ?", p.ID).Find(&categories).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, categories)
}

func CreateMessageCategory(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !model.MessageCanBeCreatedBy(pc, p) {
		response.PermissionError(c)
		return
	}

	var req CategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	category := model.ProjectMessageCategory{Name: req.Name, ProjectID: p.ID}
	if err := query.DB.Create(&category).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, category)
}

func obtainMessage(c *gin.Context) (*model.ProjectMessage, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var m model.ProjectMessage
	if err := query.DB.Preload("Project").First(&m, id).Error; err != nil {
		response.NotFoundError(c, "message not found", response.InvalidObject)
		return nil, false
	}
	if !m.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return nil, false
	}
	return &m, true
}

func RegisterMessage(g *gin.RouterGroup) {
	g.GET("/projects/:project_id/messages", ListMessages)
	g.POST("/projects/:project_id/messages", CreateMessage)
	g.GET("/projects/:project_id/message-categories", ListMessageCategories)
	g.POST("/projects/:project_id/message-categories", CreateMessageCategory)
	g.GET("/messages/:id", GetMessage)
	g.PUT("/messages/:id", UpdateMessage)
	g.DELETE("/messages/:id", DeleteMessage)
	g.PUT("/messages/:id/subscribe", SubscribeMessage)
	g.PUT("/messages/:id/unsubscribe", UnsubscribeMessage)
}
