package service

import (
	"time"

	"collab/dao/model"
	"collab/dao/query"
	"collab/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TaskListReq struct {
	Name        string `json:"name" binding:"required"`
	Position    int    `json:"position"`
	MilestoneID uint   `json:"milestoneId"`
	IsPrivate   bool   `json:"isPrivate"`
}

type TaskResp struct {
	ID               uint       `json:"id"`
	Text             string     `json:"text"`
	Position         int        `json:"position"`
	TaskListID       uint       `json:"taskListId"`
	ProjectID        uint       `json:"projectId"`
	CompletedOn      *time.Time `json:"completedOn"`
	AssignedToUserID uint       `json:"assignedToUserId"`
	CreatedByID      uint       `json:"createdById"`
}

type TaskListResp struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Position    int        `json:"position"`
	ProjectID   uint       `json:"projectId"`
	MilestoneID uint       `json:"milestoneId"`
	CompletedOn *time.Time `json:"completedOn"`
	IsPrivate   bool       `json:"isPrivate"`
	Tasks       []TaskResp `json:"tasks"`
}

func taskResp(t *model.ProjectTask) TaskResp {
	return TaskResp{
		ID:               t.ID,
		Text:             t.Text,
		Position:         t.Position,
		TaskListID:       t.TaskListID,
		ProjectID:        t.ProjectID,
		CompletedOn:      t.CompletedOn,
		AssignedToUserID: t.AssignedToUserID,
		CreatedByID:      t.CreatedByID,
	}
}

func taskListResp(tl *model.ProjectTaskList) TaskListResp {
	resp := TaskListResp{
		ID:          tl.ID,
		Name:        tl.Name,
		Position:    tl.Position,
		ProjectID:   tl.ProjectID,
		MilestoneID: tl.MilestoneID,
		CompletedOn: tl.CompletedOn,
		IsPrivate:   tl.IsPrivate,
		Tasks:       make([]TaskResp, 0, len(tl.Tasks)),
	}
	for i := range tl.Tasks {
		resp.Tasks = append(resp.Tasks, taskResp(&tl.Tasks[i]))
	}
	return resp
}

func ListTaskLists(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)

	q := query.DB.Where("project_id = ?", p.ID).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") })
	if !pc.MemberOfOwner() {
		q = q.Where("is_private = ?", false)
	}

	var lists []model.ProjectTaskList
	if err := q.Order("position DESC, id ASC").Find(&lists).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	resp := make([]TaskListResp, 0, len(lists))
	for i := range lists {
		resp = append(resp, taskListResp(&lists[i]))
	}
	response.Success(c, resp)
}

func CreateTaskList(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !model.TaskListCanBeCreatedBy(pc, p) {
		response.PermissionError(c)
		return
	}

	var req TaskListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	tl := model.ProjectTaskList{
		Name:        req.Name,
		Position:    req.Position,
		MilestoneID: req.MilestoneID,
		IsPrivate:   req.IsPrivate,
		ProjectID:   p.ID,
		CreatedByID: pc.UserID(),
	}
	if err := query.Create(query.DB, pc.UserID(), &tl); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, taskListResp(&tl))
}

func GetTaskList(c *gin.Context) {
	tl, ok := obtainTaskList(c)
	if !ok {
		return
	}
	response.Success(c, taskListResp(tl))
}

func UpdateTaskList(c *gin.Context) {
	tl, ok := obtainTaskList(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !tl.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req TaskListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	tl.Name = req.Name
	tl.Position = req.Position
	tl.MilestoneID = req.MilestoneID
	tl.IsPrivate = req.IsPrivate
	tl.UpdatedByID = pc.UserID()

	if err := query.Update(query.DB, pc.UserID(), tl); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, taskListResp(tl))
}

// DeleteTaskList destroys the list and its tasks together.
func DeleteTaskList(c *gin.Context) {
	tl, ok := obtainTaskList(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !tl.CanBeDeletedBy(pc) {
		response.PermissionError(c)
		return
	}

	err := query.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_list_id = ?", tl.ID).
			Delete(&model.ProjectTask{}).Error; err != nil {
			return err
		}
		return query.Destroy(tx, pc.UserID(), tl)
	})
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

func completeTaskList(c *gin.Context, done bool) {
	tl, ok := obtainTaskList(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !tl.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}
	if err := query.SetCompleted(query.DB, pc.UserID(), tl, done); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, taskListResp(tl))
}

func CompleteTaskList(c *gin.Context) { completeTaskList(c, true) }
func OpenTaskList(c *gin.Context) { completeTaskList(c, false) }

type TaskReq struct {
	Text             string `json:"text" binding:"required"`
	Position         int    `json:"position"`
	AssignedToUserID uint   `json:"assignedToUserId"`
}

func CreateTask(c *gin.Context) {
	tl, ok := obtainTaskList(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !model.TaskCanBeCreatedBy(pc, tl) {
		response.PermissionError(c)
		return
	}

	var req TaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	t := model.ProjectTask{
		Text:             req.Text,
		Position:         req.Position,
		TaskListID:       tl.ID,
		ProjectID:        tl.ProjectID,
		AssignedToUserID: req.AssignedToUserID,
		CreatedByID:      pc.UserID(),
	}
	if err := query.Create(query.DB, pc.UserID(), &t); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, taskResp(&t))
}

func UpdateTask(c *gin.Context) {
	t, ok := obtainTask(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !t.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req TaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	t.Text = req.Text
	t.Position = req.Position
	t.AssignedToUserID = req.AssignedToUserID
	t.UpdatedByID = pc.UserID()

	if err := query.Update(query.DB, pc.UserID(), t); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, taskResp(t))
}

func DeleteTask(c *gin.Context) {
	t, ok := obtainTask(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !t.CanBeDeletedBy(pc) {
		response.PermissionError(c)
		return
	}
	if err := query.Destroy(query.DB, pc.UserID(), t); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

func completeTask(c *gin.Context, done bool) {
	t, ok := obtainTask(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !t.StatusCanBeChangedBy(pc) {
		response.PermissionError(c)
		return
	}
	if err := query.SetCompleted(query.DB, pc.UserID(), t, done); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, taskResp(t))
}

func CompleteTask(c *gin.Context) { completeTask(c, true) }
func OpenTask(c *gin.Context) { completeTask(c, false) }

func obtainTaskList(c *gin.Context) (*model.ProjectTaskList, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var tl model.ProjectTaskList
	if err := query.DB.Preload("Project").Preload("Tasks").First(&tl, id).Error; err != nil {
		response.NotFoundError(c, "task list not found", response.InvalidObject)
		return nil, false
	}
	if !tl.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return nil, false
	}
	return &tl, true
}

func obtainTask(c *gin.Context) (*model.ProjectTask, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var t model.ProjectTask
	if err := query.DB.Preload("TaskList.Project").First(&t, id).Error; err != nil {
		response.NotFoundError(c, "task not found", response.InvalidObject)
		return nil, false
	}
	if !t.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return nil, false
	}
	return &t, true
}

func RegisterTask(g *gin.RouterGroup) {
	g.GET("/projects/:project_id/task-lists", ListTaskLists)
	g.POST("/projects/:project_id/task-lists", CreateTaskList)
	g.GET("/task-lists/:id", GetTaskList)
	g.PUT("/task-lists/:id", UpdateTaskList)
	g.DELETE("/task-lists/:id", DeleteTaskList)
	g.PUT("/task-lists/:id/complete", CompleteTaskList)
	g.PUT("/task-lists/:id/open", OpenTaskList)
	g.POST("/task-lists/:id/tasks", CreateTask)
	g.PUT("/tasks/:id", UpdateTask)
	g.DELETE("/tasks/:id", DeleteTask)
	g.PUT("/tasks/:id/complete", CompleteTask)
	g.PUT("/tasks/:id/open", OpenTask)
}
