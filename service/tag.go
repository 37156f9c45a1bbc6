package service

import (
	"collab/dao/model"
	"collab/dao/query"
	"collab/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListProjectTags returns the distinct tag names used in the project.
func ListProjectTags(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	var names []string
	err := query.DB.Model(&model.Tag{}).Distinct("name").
		Where("project_id = ?", p.ID).Order("name ASC").Pluck("name", &names).Error
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, names)
}

type TagReq struct {
	Names []string `json:"names" binding:"required"`
}

// SetObjectTags replaces the tag set of one taggable object, resolved via
// the same keys comments use.
func SetObjectTags(c *gin.Context) {
	rec, ok := resolveCommentable(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !rec.CanBeSeenBy(pc) {
		response.PermissionError(c)
		return
	}

	var req TagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	err := query.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rel_object_type = ? AND rel_object_id = ?",
			rec.ObjectType(), rec.ObjectID()).Delete(&model.Tag{}).Error; err != nil {
			return err
		}
		for _, name := range req.Names {
			if name == "" {
				continue
			}
			tag := model.Tag{
				Name:          name,
				ProjectID:     rec.ProjectScope(),
				RelObjectType: rec.ObjectType(),
				RelObjectID:   rec.ObjectID(),
				CreatedByID:   pc.UserID(),
			}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

// GetObjectTags lists the tag names on one object.
func GetObjectTags(c *gin.Context) {
	rec, ok := resolveCommentable(c)
	if !ok {
		return
	}
	if !rec.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return
	}
	var names []string
	err := query.DB.Model(&model.Tag{}).
		Where("rel_object_type = ? AND rel_object_id = ?", rec.ObjectType(), rec.ObjectID()).
		Order("name ASC").Pluck("name", &names).Error
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, names)
}

func RegisterTag(g *gin.RouterGroup) {
	g.GET("/projects/:project_id/tags", ListProjectTags)
	g.GET("/tags", GetObjectTags)
	g.PUT("/tags", SetObjectTags)
}
