package service

import (
	"collab/dao/model"
	"collab/dao/query"
	"collab/response"

	"github.com/gin-gonic/gin"
)

type CompanyReq struct {
	Name     string `json:"name" binding:"required"`
	Homepage string `json:"homepage"`
	TimeZone string `json:"timeZone"`
}

type CompanyResp struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsOwner  bool   `json:"isOwner"`
	Homepage string `json:"homepage"`
	TimeZone string `json:"timeZone"`
}

func companyResp(co *model.Company) CompanyResp {
	return CompanyResp{
		ID:       co.ID,
		Name:     co.Name,
		IsOwner:  co.IsOwner,
		Homepage: co.Homepage,
		TimeZone: co.TimeZone,
	}
}

func ListCompanies(c *gin.Context) {
	var companies []model.Company
	if err := query.DB.Order("is_owner DESC, name ASC").Find(&companies).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	resp := make([]CompanyResp, 0, len(companies))
	for i := range companies {
		resp = append(resp, companyResp(&companies[i]))
	}
	response.Success(c, resp)
}

func CreateCompany(c *gin.Context) {
	pc := permContext(c)
	if !model.CompanyCanBeCreatedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req CompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	co := model.Company{
		Name:        req.Name,
		Homepage:    req.Homepage,
		TimeZone:    req.TimeZone,
		CreatedByID: pc.UserID(),
	}
	if err := query.Create(query.DB, pc.UserID(), &co); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, companyResp(&co))
}

func GetCompany(c *gin.Context) {
	co, ok := obtainCompany(c)
	if !ok {
		return
	}
	response.Success(c, companyResp(co))
}

func UpdateCompany(c *gin.Context) {
	co, ok := obtainCompany(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !co.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req CompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	co.Name = req.Name
	co.Homepage = req.Homepage
	co.TimeZone = req.TimeZone

	if err := query.Update(query.DB, pc.UserID(), co); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, companyResp(co))
}

// DeleteCompany refuses to remove the owner company or any company that
// still has users.
func DeleteCompany(c *gin.Context) {
	co, ok := obtainCompany(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !co.CanBeDeletedBy(pc) {
		response.PermissionError(c)
		return
	}

	var users int64
	if err := query.DB.Model(&model.User{}).Where("company_id = ?", co.ID).
		Count(&users).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	if users > 0 {
		response.ValidationError(c, map[string]string{"company": "still has users"})
		return
	}

	if err := query.Destroy(query.DB, pc.UserID(), co); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

func obtainCompany(c *gin.Context) (*model.Company, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var co model.Company
	if err := query.DB.First(&co, id).Error; err != nil {
		response.NotFoundError(c, "company not found", response.InvalidCompany)
		return nil, false
	}
	return &co, true
}

func RegisterCompany(g *gin.RouterGroup) {
	g.GET("/companies", ListCompanies)
	g.POST("/companies", CreateCompany)
	g.GET("/companies/:id", GetCompany)
	g.PUT("/companies/:id", UpdateCompany)
	g.DELETE("/companies/:id", DeleteCompany)
}
