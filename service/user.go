package service

import (
	"collab/dao/model"
	"collab/dao/query"
	"collab/response"
	"collab/util"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserCreateReq struct {
	Username         string `json:"username" binding:"required"`
	DisplayName      string `json:"displayName"`
	Password         string `json:"password"`
	GeneratePassword bool   `json:"generatePassword"`
	CompanyID        uint   `json:"companyId" binding:"required"`
	IsAdmin          bool   `json:"isAdmin"`
	AutoAssign       bool   `json:"autoAssign"`
	Email            string `json:"email"`
	TimeZone         string `json:"timeZone"`
}

type UserResp struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
	CompanyID   uint   `json:"companyId"`
	Email       string `json:"email,omitempty"`
	TimeZone    string `json:"timeZone,omitempty"`
}

func userResp(u *model.User) UserResp {
	attrs := u.Attributes.Data()
	return UserResp{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
		CompanyID:   u.CompanyID,
		Email:       attrs.Email,
		TimeZone:    attrs.TimeZone,
	}
}

func ListUsers(c *gin.Context) {
	var users []model.User
	if err := query.DB.Order("username ASC").Find(&users).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	resp := make([]UserResp, 0, len(users))
	for i := range users {
		resp = append(resp, userResp(&users[i]))
	}
	response.Success(c, resp)
}

// CreateUser provisions an account inside an existing company. With
// generatePassword the initial password is random and returned once in the
// response, never stored in the clear.
func CreateUser(c *gin.Context) {
	pc := permContext(c)
	if !model.UserCanBeCreatedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req UserCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var co model.Company
	if err := query.DB.First(&co, req.CompanyID).Error; err != nil {
		response.NotFoundError(c, "company not found", response.InvalidCompany)
		return
	}

	plain := req.Password
	if req.GeneratePassword {
		plain = util.GeneratePassword()
	}
	if plain == "" {
		response.ValidationError(c, map[string]string{"password": "can't be blank"})
		return
	}
	hash, err := util.HashPassword(plain)
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	u := model.User{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    hash,
		IsAdmin:     req.IsAdmin,
		AutoAssign:  req.AutoAssign,
		CompanyID:   co.ID,
		Attributes: datatypes.NewJSONType(model.UserAttribute{
			Email:    req.Email,
			TimeZone: req.TimeZone,
		}),
		CreatedByID: pc.UserID(),
	}
	if err := query.Create(query.DB, pc.UserID(), &u); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	resp := gin.H{"user": userResp(&u)}
	if req.GeneratePassword {
		resp["initialPassword"] = plain
	}
	response.Success(c, resp)
}

func CurrentUser(c *gin.Context) {
	response.Success(c, userResp(loggedUser(c)))
}

// GetUserCard is the public profile card, visible to anyone who shares
// visibility with the user.
func GetUserCard(c *gin.Context) {
	u, ok := obtainUser(c)
	if !ok {
		return
	}
	if !u.CanBeViewedBy(permContext(c)) {
		response.PermissionError(c)
		return
	}
	response.Success(c, userResp(u))
}

type UserUpdateReq struct {
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Avatar      string `json:"avatar"`
	IMValue     string `json:"imValue"`
	TimeZone    string `json:"timeZone"`
	IsAdmin     *bool  `json:"isAdmin"`
	AutoAssign  *bool  `json:"autoAssign"`
}

// UpdateUser handles both self-service profile edits and administrative
// edits. Role flags only move for owner-company admins.
func UpdateUser(c *gin.Context) {
	u, ok := obtainUser(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !u.ProfileCanBeUpdatedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req UserUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if req.DisplayName != "" {
		u.DisplayName = req.DisplayName
	}
	if req.Password != "" {
		hash, err := util.HashPassword(req.Password)
		if err != nil {
			response.Error(c, err.Error(), response.NotSpecified)
			return
		}
		u.Password = hash
	}

	attrs := u.Attributes.Data()
	if req.Email != "" {
		attrs.Email = req.Email
	}
	if req.Phone != "" {
		attrs.Phone = req.Phone
	}
	if req.Avatar != "" {
		attrs.Avatar = req.Avatar
	}
	if req.IMValue != "" {
		attrs.IMValue = req.IMValue
	}
	if req.TimeZone != "" {
		attrs.TimeZone = req.TimeZone
	}
	u.Attributes = datatypes.NewJSONType(attrs)

	if pc.OwnerAdmin() {
		if req.IsAdmin != nil {
			u.IsAdmin = *req.IsAdmin
		}
		if req.AutoAssign != nil {
			u.AutoAssign = *req.AutoAssign
		}
	}

	if err := query.Update(query.DB, pc.UserID(), u); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, userResp(u))
}

func DeleteUser(c *gin.Context) {
	u, ok := obtainUser(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !u.CanBeDeletedBy(pc) {
		response.PermissionError(c)
		return
	}
	if err := query.DestroyUser(query.DB, pc.UserID(), u); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

type UserPermissionsReq struct {
	// Projects maps project id to the permission names granted there. A
	// nil entry removes the membership entirely.
	Projects map[uint][]string `json:"projects" binding:"required"`
}

// UpdateUserPermissions rewrites the user's membership matrix in one
// transaction: listed projects get exactly the named permissions, entries
// with no permissions are dropped.
func UpdateUserPermissions(c *gin.Context) {
	u, ok := obtainUser(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !u.PermissionsCanBeUpdatedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req UserPermissionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	err := query.DB.Transaction(func(tx *gorm.DB) error {
		for projectID, names := range req.Projects {
			if err := tx.Where("user_id = ? AND project_id = ?", u.ID, projectID).
				Delete(&model.ProjectUser{}).Error; err != nil {
				return err
			}
			if len(names) == 0 {
				continue
			}
			membership := model.ProjectUser{
				UserID:      u.ID,
				ProjectID:   projectID,
				Permissions: model.ParsePermissions(names),
			}
			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
		}
		return query.LogSilent(tx, pc.UserID(), u, model.ActionEdit)
	})
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

func obtainUser(c *gin.Context) (*model.User, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var u model.User
	if err := query.DB.Preload("Company").First(&u, id).Error; err != nil {
		response.NotFoundError(c, "user not found", response.InvalidUser)
		return nil, false
	}
	return &u, true
}

func RegisterUser(g *gin.RouterGroup) {
	g.GET("/users", ListUsers)
	g.POST("/users", CreateUser)
	g.GET("/users/me", CurrentUser)
	g.GET("/users/:id/card", GetUserCard)
	g.PUT("/users/:id", UpdateUser)
	g.DELETE("/users/:id", DeleteUser)
	g.PUT("/users/:id/permissions", UpdateUserPermissions)
}
