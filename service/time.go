package service

import (
	"encoding/xml"
	"net/http"
	"strconv"
	"time"

	"collab/config"
	"collab/dao/model"
	"collab/dao/query"
	"collab/response"

	"github.com/gin-gonic/gin"
)

type TimeReq struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Hours       float64   `json:"hours" binding:"required"`
	DoneDate    time.Time `json:"doneDate" binding:"required"`
	TaskListID  uint      `json:"taskListId"`
	TaskID      uint      `json:"taskId"`
	IsPrivate   bool      `json:"isPrivate"`
}

type TimeResp struct {
	XMLName     xml.Name  `json:"-" xml:"time"`
	ID          uint      `json:"id" xml:"id"`
	Name        string    `json:"name" xml:"name"`
	Description string    `json:"description" xml:"description,omitempty"`
	Hours       float64   `json:"hours" xml:"hours"`
	DoneDate    time.Time `json:"doneDate" xml:"done-date"`
	ProjectID   uint      `json:"projectId" xml:"project-id"`
	TaskListID  uint      `json:"taskListId" xml:"task-list-id,omitempty"`
	TaskID      uint      `json:"taskId" xml:"task-id,omitempty"`
	IsPrivate   bool      `json:"isPrivate" xml:"is-private"`
	CreatedByID uint      `json:"createdById" xml:"created-by-id"`
}

func timeResp(t *model.ProjectTime) TimeResp {
	return TimeResp{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Hours:       t.Hours,
		DoneDate:    t.DoneDate,
		ProjectID:   t.ProjectID,
		TaskListID:  t.TaskListID,
		TaskID:      t.TaskID,
		IsPrivate:   t.IsPrivate,
		CreatedByID: t.CreatedByID,
	}
}

// timeSortColumns is the whitelist of client-selectable sort orders.
var timeSortColumns = map[string]string{
	"done_date":  "done_date DESC",
	"hours":      "hours DESC",
	"created_on": "created_at DESC",
}

// timeSortOrder maps the sort key to its order clause. Anything outside
// the whitelist falls back to creation time.
func timeSortOrder(key string) string {
	if order, ok := timeSortColumns[key]; ok {
		return order
	}
	return timeSortColumns["created_on"]
}

// ListTimes pages through the project's entries, newest first by default.
// sort= picks another whitelisted order; unknown values fall back.
func ListTimes(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !pc.HasPermission(p.ID, model.CanManageTime) {
		response.PermissionError(c)
		return
	}

	perPage := config.GetConfig().TimesPerPage
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	order := timeSortOrder(c.Query("sort"))

	q := query.DB.Model(&model.ProjectTime{}).Where("project_id = ?", p.ID)
	if !pc.MemberOfOwner() {
		q = q.Where("is_private = ?", false)
	}
	if taskID := c.Query("task_id"); taskID != "" {
		q = q.Where("task_id = ?", taskID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	var times []model.ProjectTime
	if err := q.Order(order).Limit(perPage).Offset((page - 1) * perPage).
		Find(&times).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	resp := make([]TimeResp, 0, len(times))
	for i := range times {
		resp = append(resp, timeResp(&times[i]))
	}
	if response.WantsXML(c) {
		c.XML(http.StatusOK, struct {
			XMLName xml.Name   `xml:"times"`
			Page    int        `xml:"page,attr"`
			Total   int64      `xml:"total,attr"`
			Times   []TimeResp `xml:"time"`
		}{Page: page, Total: total, Times: resp})
		return
	}
	response.Success(c, gin.H{"times": resp, "page": page, "total": total})
}

func CreateTime(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !model.TimeCanBeCreatedBy(pc, p) {
		response.PermissionError(c)
		return
	}

	var req TimeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	t := model.ProjectTime{
		Name:        req.Name,
		Description: req.Description,
		Hours:       req.Hours,
		DoneDate:    req.DoneDate,
		TaskListID:  req.TaskListID,
		TaskID:      req.TaskID,
		IsPrivate:   req.IsPrivate,
		ProjectID:   p.ID,
		CreatedByID: pc.UserID(),
	}
	if err := query.Create(query.DB, pc.UserID(), &t); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, timeResp(&t))
}

func GetTime(c *gin.Context) {
	t, ok := obtainTime(c)
	if !ok {
		return
	}
	if response.WantsXML(c) {
		c.XML(http.StatusOK, timeResp(t))
		return
	}
	response.Success(c, timeResp(t))
}

func UpdateTime(c *gin.Context) {
	t, ok := obtainTime(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !t.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req TimeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	t.Name = req.Name
	t.Description = req.Description
	t.Hours = req.Hours
	t.DoneDate = req.DoneDate
	t.TaskListID = req.TaskListID
	t.TaskID = req.TaskID
	t.IsPrivate = req.IsPrivate
	t.UpdatedByID = pc.UserID()

	if err := query.Update(query.DB, pc.UserID(), t); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, timeResp(t))
}

func DeleteTime(c *gin.Context) {
	t, ok := obtainTime(c)
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

func obtainTime(c *gin.Context) (*model.ProjectTime, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var t model.ProjectTime
	if err := query.DB.Preload("Project").First(&t, id).Error; err != nil {
		response.NotFoundError(c, "time entry not found", response.InvalidTime)
		return nil, false
	}
	if !t.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return nil, false
	}
	return &t, true
}

func RegisterTime(g *gin.RouterGroup) {
	g.GET("/projects/:project_id/times", ListTimes)
	g.POST("/projects/:project_id/times", CreateTime)
	g.GET("/times/:id", GetTime)
	g.PUT("/times/:id", UpdateTime)
	g.DELETE("/times/:id", DeleteTime)
}
