package service

import (
	"time"

	"collab/config"
	"collab/dao/model"
	"collab/dao/query"
	"collab/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectReq struct {
	Name                      string `json:"name" binding:"required"`
	Description               string `json:"description"`
	Priority                  int    `json:"priority"`
	ShowDescriptionInOverview bool   `json:"showDescriptionInOverview"`
}

type ProjectResp struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Priority    int        `json:"priority"`
	CompletedOn *time.Time `json:"completedOn"`
	CreatedByID uint       `json:"createdById"`
	CreatedOn   time.Time  `json:"createdOn"`
}

func projectResp(p *model.Project) ProjectResp {
	return ProjectResp{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Priority:    p.Priority,
		CompletedOn: p.CompletedOn,
		CreatedByID: p.CreatedByID,
		CreatedOn:   p.CreatedAt,
	}
}

// ListProjects returns the actor's projects; owner admins see all of them.
func ListProjects(c *gin.Context) {
	pc := permContext(c)

	var projects []model.Project
	q := query.DB.Order("priority DESC, name ASC")
	if !pc.OwnerAdmin() {
		q = q.Where("id IN ?", append(pc.ProjectIDs(), 0))
	}
	if err := q.Find(&projects).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	resp := make([]ProjectResp, 0, len(projects))
	for i := range projects {
		resp = append(resp, projectResp(&projects[i]))
	}
	response.Success(c, resp)
}

func CreateProject(c *gin.Context) {
	pc := permContext(c)
	if !model.ProjectCanBeCreatedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req ProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	p := model.Project{
		Name:                      req.Name,
		Description:               req.Description,
		Priority:                  req.Priority,
		ShowDescriptionInOverview: req.ShowDescriptionInOverview,
		CreatedByID:               pc.UserID(),
	}

	// the creator joins with full permissions in the same transaction
	err := query.DB.Transaction(func(tx *gorm.DB) error {
		if err := query.Create(tx, pc.UserID(), &p); err != nil {
			return err
		}
		membership := model.ProjectUser{
			UserID:      pc.UserID(),
			ProjectID:   p.ID,
			Permissions: model.ParsePermissions(permissionNameList()),
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, projectResp(&p))
}

func GetProject(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	response.Success(c, projectResp(p))
}

func UpdateProject(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !p.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req ProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	p.Name = req.Name
	p.Description = req.Description
	p.Priority = req.Priority
	p.ShowDescriptionInOverview = req.ShowDescriptionInOverview
	p.UpdatedByID = pc.UserID()

	if err := query.Update(query.DB, pc.UserID(), p); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, projectResp(p))
}

func DeleteProject(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !p.CanBeDeletedBy(pc) {
		response.PermissionError(c)
		return
	}
	if err := query.DestroyProject(query.DB, pc.UserID(), p); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

func completeProject(c *gin.Context, done bool) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !p.StatusCanBeChangedBy(pc) {
		response.PermissionError(c)
		return
	}
	if err := query.SetCompleted(query.DB, pc.UserID(), p, done); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, projectResp(p))
}

func CompleteProject(c *gin.Context) { completeProject(c, true) }
func OpenProject(c *gin.Context) { completeProject(c, false) }

type ProjectUserReq struct {
	UserID      uint     `json:"userId" binding:"required"`
	Permissions []string `json:"permissions"`
}

// AddProjectUser creates or replaces the membership row for a user.
func AddProjectUser(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !p.CanBeManagedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req ProjectUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	var user model.User
	if err := query.DB.First(&user, req.UserID).Error; err != nil {
		response.NotFoundError(c, "user not found", response.InvalidUser)
		return
	}

	err := query.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND project_id = ?", user.ID, p.ID).
			Delete(&model.ProjectUser{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.ProjectUser{
			UserID:      user.ID,
			ProjectID:   p.ID,
			Permissions: model.ParsePermissions(req.Permissions),
		}).Error; err != nil {
			return err
		}
		return query.LogSilent(tx, pc.UserID(), p, model.ActionEdit)
	})
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

func RemoveProjectUser(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)

	uid, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	var user model.User
	if err := query.DB.Preload("Company").First(&user, uid).Error; err != nil {
		response.NotFoundError(c, "user not found", response.InvalidUser)
		return
	}
	if !p.UserCanBeRemovedBy(&user, pc) {
		response.PermissionError(c)
		return
	}

	err := query.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND project_id = ?", user.ID, p.ID).
			Delete(&model.ProjectUser{}).Error; err != nil {
			return err
		}
		return query.LogSilent(tx, pc.UserID(), p, model.ActionEdit)
	})
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

type ProjectCompanyReq struct {
	CompanyID uint `json:"companyId" binding:"required"`
}

func AddProjectCompany(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !p.CanBeManagedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req ProjectCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	var co model.Company
	if err := query.DB.First(&co, req.CompanyID).Error; err != nil {
		response.NotFoundError(c, "company not found", response.InvalidCompany)
		return
	}
	if err := query.DB.Model(p).Association("Companies").Append(&co); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

func RemoveProjectCompany(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)

	cid, ok := paramID(c, "company_id")
	if !ok {
		return
	}
	var co model.Company
	if err := query.DB.First(&co, cid).Error; err != nil {
		response.NotFoundError(c, "company not found", response.InvalidCompany)
		return
	}
	if !p.CompanyCanBeRemovedBy(&co, pc) {
		response.PermissionError(c)
		return
	}
	if err := query.DB.Model(p).Association("Companies").Delete(&co); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

// SearchProject scans one project; Search scans everything the actor can
// see. Both return empty results when search is disabled.
func SearchProject(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	runSearch(c, []uint{p.ID}, pc.MemberOfOwner())
}

func Search(c *gin.Context) {
	pc := permContext(c)
	runSearch(c, pc.ProjectIDs(), pc.MemberOfOwner())
}

func runSearch(c *gin.Context, projectIDs []uint, includePrivate bool) {
	results, total, err := query.Search(query.DB, c.Query("q"), query.SearchOptions{
		Enabled:        config.GetConfig().Search.Enabled,
		IncludePrivate: includePrivate,
		ProjectIDs:     projectIDs,
	})
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, gin.H{"results": results, "total": total})
}

func permissionNameList() []string {
	names := make([]string, 0, len(model.PermissionNames()))
	for name := range model.PermissionNames() {
		names = append(names, name)
	}
	return names
}

func RegisterProject(g *gin.RouterGroup) {
	g.GET("/projects", ListProjects)
	g.POST("/projects", CreateProject)
	g.GET("/projects/:project_id", GetProject)
	g.PUT("/projects/:project_id", UpdateProject)
	g.DELETE("/projects/:project_id", DeleteProject)
	g.PUT("/projects/:project_id/complete", CompleteProject)
	g.PUT("/projects/:project_id/open", OpenProject)
	g.POST("/projects/:project_id/users", AddProjectUser)
	g.DELETE("/projects/:project_id/users/:user_id", RemoveProjectUser)
	g.POST("/projects/:project_id/companies", AddProjectCompany)
	g.DELETE("/projects/:project_id/companies/:company_id", RemoveProjectCompany)
	g.GET("/projects/:project_id/search", SearchProject)
	g.GET("/search", Search)
}
