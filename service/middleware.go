package service

import (
	"net/http"
	"strconv"
	"strings"

	"collab/dao/model"
	"collab/dao/query"
	"collab/perm"
	"collab/response"
	"collab/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ctxUserKey = "logged-user"
	ctxPermKey = "perm-context"
)

// AuthRequired resolves the Bearer token to the logged user and builds the
// permission context for the request. Handlers downstream never touch
// membership rows directly.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			response.HTTPError(c, http.StatusUnauthorized, "missing bearer token", response.InvalidToken)
			c.Abort()
			return
		}

		msg, err := util.GetTokenMgr().CheckToken(token)
		if err != nil {
			response.HTTPError(c, http.StatusUnauthorized, err.Error(), response.TokenExpired)
			c.Abort()
			return
		}

		var user model.User
		if err := query.DB.Preload("Company").First(&user, msg.UserID).Error; err != nil {
			response.HTTPError(c, http.StatusUnauthorized, "user not found", response.InvalidUser)
			c.Abort()
			return
		}

		var memberships []model.ProjectUser
		if err := query.DB.Where("user_id = ?", user.ID).Find(&memberships).Error; err != nil {
			response.Error(c, err.Error(), response.NotSpecified)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, &user)
		c.Set(ctxPermKey, perm.NewContext(&user, memberships))
		c.Next()
	}
}

func loggedUser(c *gin.Context) *model.User {
	v, _ := c.Get(ctxUserKey)
	return v.(*model.User)
}

func permContext(c *gin.Context) *perm.Context {
	v, _ := c.Get(ctxPermKey)
	return v.(*perm.Context)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequestError(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// obtainProject loads the project from the :project_id route param and
// checks visibility. On failure the response is already written.
func obtainProject(c *gin.Context) (*model.Project, bool) {
	id, ok := paramID(c, "project_id")
	if !ok {
		return nil, false
	}
	var p model.Project
	if err := query.DB.First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFoundError(c, "project not found", response.InvalidProject)
		} else {
			response.Error(c, err.Error(), response.NotSpecified)
		}
		return nil, false
	}
	if !p.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return nil, false
	}
	return &p, true
}
