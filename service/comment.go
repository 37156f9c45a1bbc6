package service

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"time"

	"collab/dao/model"
	"collab/dao/query"
	"collab/logutils"
	"collab/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CommentResp is the comment rendition. The XML shape is an allow-list:
// author email and homepage only appear when renderAuthorDetails elides
// nothing, so non-admin readers never see them.
type CommentResp struct {
	XMLName        xml.Name  `json:"-" xml:"comment"`
	ID             uint      `json:"id" xml:"id"`
	Text           string    `json:"text" xml:"text"`
	ObjectType     string    `json:"objectType" xml:"object-type"`
	ObjectID       uint      `json:"objectId" xml:"object-id"`
	ProjectID      uint      `json:"projectId" xml:"project-id"`
	IsPrivate      bool      `json:"isPrivate" xml:"is-private"`
	IsAnonymous    bool      `json:"isAnonymous" xml:"is-anonymous"`
	AuthorName     string    `json:"authorName,omitempty" xml:"author-name,omitempty"`
	AuthorEmail    string    `json:"authorEmail,omitempty" xml:"author-email,omitempty"`
	AuthorHomepage string    `json:"authorHomepage,omitempty" xml:"author-homepage,omitempty"`
	AttachedFiles  int       `json:"attachedFiles" xml:"attached-files"`
	CreatedByID    uint      `json:"createdById" xml:"created-by-id"`
	CreatedOn      time.Time `json:"createdOn" xml:"created-on"`
}

func commentResp(cm *model.Comment, renderAuthorDetails bool) CommentResp {
	resp := CommentResp{
		ID:            cm.ID,
		Text:          cm.Text,
		ObjectType:    cm.RelObjectType,
		ObjectID:      cm.RelObjectID,
		ProjectID:     cm.ProjectID,
		IsPrivate:     cm.IsPrivate,
		IsAnonymous:   cm.IsAnonymous,
		AuthorName:    cm.AuthorName,
		AttachedFiles: cm.AttachedFilesCount,
		CreatedByID:   cm.CreatedByID,
		CreatedOn:     cm.CreatedAt,
	}
	if renderAuthorDetails {
		resp.AuthorEmail = cm.AuthorEmail
		resp.AuthorHomepage = cm.AuthorHomepage
	}
	return resp
}

// ListComments returns the comments on one commentable object, resolved
// from the same keys comment creation uses.
func ListComments(c *gin.Context) {
	rec, ok := resolveCommentable(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !rec.CanBeSeenBy(pc) {
		response.PermissionError(c)
		return
	}

	q := query.DB.Where("rel_object_type = ? AND rel_object_id = ?",
		rec.ObjectType(), rec.ObjectID())
	if !pc.MemberOfOwner() {
		q = q.Where("is_private = ?", false)
	}

	var comments []model.Comment
	if err := q.Order("created_at ASC").Find(&comments).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	resp := make([]CommentResp, 0, len(comments))
	for i := range comments {
		resp = append(resp, commentResp(&comments[i], pc.IsAdmin()))
	}
	if response.WantsXML(c) {
		c.XML(http.StatusOK, struct {
			XMLName  xml.Name      `xml:"comments"`
			Comments []CommentResp `xml:"comment"`
		}{Comments: resp})
		return
	}
	response.Success(c, resp)
}

// CreateComment posts a comment on whichever object the request keys name.
// The body is a multipart form so attachments can ride along; rejected
// attachments do not fail the comment, they only add a warning.
func CreateComment(c *gin.Context) {
	rec, ok := resolveCommentable(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !rec.CommentCanBeAddedBy(pc) {
		response.PermissionError(c)
		return
	}

	text := c.PostForm("text")
	if text == "" {
		response.BadRequestError(c, "text is required")
		return
	}

	cm := model.Comment{
		Text:          text,
		RelObjectType: rec.ObjectType(),
		RelObjectID:   rec.ObjectID(),
		ProjectID:     rec.ProjectScope(),
		IsPrivate:     c.PostForm("is_private") == "true" && pc.MemberOfOwner(),
		CreatedByID:   pc.UserID(),
	}
	if c.PostForm("is_anonymous") == "true" {
		if !anonymousCommentAllowed(rec) {
			response.BadRequestError(c, "anonymous comments are not accepted here")
			return
		}
		cm.IsAnonymous = true
		cm.AuthorName = c.PostForm("author_name")
		cm.AuthorEmail = c.PostForm("author_email")
		cm.AuthorHomepage = c.ClientIP()
	}

	if err := query.Create(query.DB, pc.UserID(), &cm); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	// commenting on a message subscribes the author to the thread and
	// notifies everyone already on it
	if msg, isMsg := rec.(*model.ProjectMessage); isMsg {
		ensureSubscribed(pc.UserID(), msg.ID)
		for _, uid := range commentRecipients(rec, pc.UserID()) {
			logutils.Log.WithFields(logutils.Fields{
				"user":    uid,
				"message": msg.ID,
				"comment": cm.ID,
			}).Info("comment notification")
		}
	}

	stored, total := 0, 0
	if form, err := c.MultipartForm(); err == nil {
		if uploads := form.File["uploaded_files"]; len(uploads) > 0 {
			stored, total = storeAttachments(c, pc.UserID(), &cm, uploads)
			if stored > 0 {
				cm.AttachedFilesCount = stored
				query.DB.Model(&cm).Update("attached_files_count", stored)
			}
		}
	}

	resp := commentResp(&cm, pc.IsAdmin())
	if total > 0 && stored < total {
		response.SuccessWithWarning(c, resp,
			fmt.Sprintf("%d of %d attachments rejected", total-stored, total))
		return
	}
	response.Success(c, resp)
}

func GetComment(c *gin.Context) {
	cm, ok := obtainComment(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if response.WantsXML(c) {
		c.XML(http.StatusOK, commentResp(cm, pc.IsAdmin()))
		return
	}
	response.Success(c, commentResp(cm, pc.IsAdmin()))
}

type CommentUpdateReq struct {
	Text      string `json:"text" binding:"required"`
	IsPrivate bool   `json:"isPrivate"`
}

func UpdateComment(c *gin.Context) {
	cm, ok := obtainComment(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !cm.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req CommentUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	cm.Text = req.Text
	cm.IsPrivate = req.IsPrivate && pc.MemberOfOwner()
	cm.UpdatedByID = pc.UserID()

	if err := query.Update(query.DB, pc.UserID(), cm); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, commentResp(cm, pc.IsAdmin()))
}

func DeleteComment(c *gin.Context) {
	cm, ok := obtainComment(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !cm.CanBeDeletedBy(pc) {
		response.PermissionError(c)
		return
	}
	if err := query.Destroy(query.DB, pc.UserID(), cm); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

// resolveCommentable turns request keys into the commented record, writing
// the error response itself on failure.
func resolveCommentable(c *gin.Context) (model.Commentable, bool) {
	lookup := func(k string) string {
		if v := c.PostForm(k); v != "" {
			return v
		}
		return c.Query(k)
	}
	key, id, err := findCommentKey(lookup)
	if err != nil {
		response.BadRequestError(c, err.Error())
		return nil, false
	}
	rec, err := loadCommentable(key, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFoundError(c, "commented object not found", response.InvalidObject)
		} else {
			response.Error(c, err.Error(), response.NotSpecified)
		}
		return nil, false
	}
	return rec, true
}

func obtainComment(c *gin.Context) (*model.Comment, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var cm model.Comment
	if err := query.DB.First(&cm, id).Error; err != nil {
		response.NotFoundError(c, "comment not found", response.InvalidComment)
		return nil, false
	}
	if !cm.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return nil, false
	}
	return &cm, true
}

func RegisterComment(g *gin.RouterGroup) {
	g.GET("/comments", ListComments)
	g.POST("/comments", CreateComment)
	g.GET("/comments/:id", GetComment)
	g.PUT("/comments/:id", UpdateComment)
	g.DELETE("/comments/:id", DeleteComment)
}
