package service

import (
	"net/http"

	"collab/dao/model"
	"collab/dao/query"
	"collab/response"
	"collab/util"

	"github.com/gin-gonic/gin"
)

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var user model.User
	if err := query.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		response.HTTPError(c, http.StatusUnauthorized, "bad credentials", response.InvalidUser)
		return
	}
	if !util.CheckPassword(user.Password, req.Password) {
		response.HTTPError(c, http.StatusUnauthorized, "bad credentials", response.InvalidUser)
		return
	}

	access, refresh, err := util.GetTokenMgr().CreateTokens(&util.JWTMessage{
		UserID:    user.ID,
		Username:  user.Username,
		CompanyID: user.CompanyID,
		IsAdmin:   user.IsAdmin,
	})
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, TokenPair{AccessToken: access, RefreshToken: refresh})
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func Refresh(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg, err := util.GetTokenMgr().CheckToken(req.RefreshToken)
	if err != nil {
		response.HTTPError(c, http.StatusUnauthorized, err.Error(), response.TokenExpired)
		return
	}

	// the user may have been deactivated or reassigned since issuance
	var user model.User
	if err := query.DB.First(&user, msg.UserID).Error; err != nil {
		response.HTTPError(c, http.StatusUnauthorized, "user not found", response.InvalidUser)
		return
	}

	access, refresh, err := util.GetTokenMgr().CreateTokens(&util.JWTMessage{
		UserID:    user.ID,
		Username:  user.Username,
		CompanyID: user.CompanyID,
		IsAdmin:   user.IsAdmin,
	})
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, TokenPair{AccessToken: access, RefreshToken: refresh})
}

func RegisterAuth(r *gin.RouterGroup) {
	r.POST("/auth/login", Login)
	r.POST("/auth/refresh", Refresh)
}
