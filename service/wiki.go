package service

import (
	"strings"
	"unicode"

	"collab/dao/model"
	"collab/dao/query"
	"collab/response"

	"github.com/gin-gonic/gin"
)

type WikiPageReq struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type WikiPageResp struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	ProjectID uint   `json:"projectId"`
}

func wikiPageResp(w *model.WikiPage) WikiPageResp {
	return WikiPageResp{
		ID:        w.ID,
		Title:     w.Title,
		Slug:      w.Slug,
		Content:   w.Content,
		ProjectID: w.ProjectID,
	}
}

// slugify derives the page slug from its title: lowercased, with runs of
// non-alphanumerics collapsed to single dashes.
func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func ListWikiPages(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	var pages []model.WikiPage
	if err := query.DB.Where("project_id = ?", p.ID).Order("title ASC").Find(&pages).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	resp := make([]WikiPageResp, 0, len(pages))
	for i := range pages {
		resp = append(resp, wikiPageResp(&pages[i]))
	}
	response.Success(c, resp)
}

func CreateWikiPage(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !p.IsActive() || !pc.HasMembership(p.ID) {
		response.PermissionError(c)
		return
	}

	var req WikiPageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	slug := slugify(req.Title)
	if slug == "" {
		response.ValidationError(c, map[string]string{"title": "produces an empty slug"})
		return
	}

	var count int64
	query.DB.Model(&model.WikiPage{}).
		Where("project_id = ? AND slug = ?", p.ID, slug).Count(&count)
	if count > 0 {
		response.ValidationError(c, map[string]string{"slug": "has already been taken"})
		return
	}

	w := model.WikiPage{
		Title:       req.Title,
		Slug:        slug,
		Content:     req.Content,
		ProjectID:   p.ID,
		CreatedByID: pc.UserID(),
	}
	if err := query.Create(query.DB, pc.UserID(), &w); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, wikiPageResp(&w))
}

// GetWikiPage fetches one page by slug within its project.
func GetWikiPage(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	var w model.WikiPage
	err := query.DB.Preload("Project").
		Where("project_id = ? AND slug = ?", p.ID, c.Param("slug")).
		First(&w).Error
	if err != nil {
		response.NotFoundError(c, "wiki page not found", response.InvalidObject)
		return
	}
	if !w.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return
	}
	response.Success(c, wikiPageResp(&w))
}

func UpdateWikiPage(c *gin.Context) {
	w, ok := obtainWikiPage(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !w.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req WikiPageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	w.Title = req.Title
	w.Content = req.Content
	w.UpdatedByID = pc.UserID()

	if err := query.Update(query.DB, pc.UserID(), w); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, wikiPageResp(w))
}

func DeleteWikiPage(c *gin.Context) {
	w, ok := obtainWikiPage(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !w.CanBeDeletedBy(pc) {
		response.PermissionError(c)
		return
	}
	if err := query.Destroy(query.DB, pc.UserID(), w); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

func obtainWikiPage(c *gin.Context) (*model.WikiPage, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var w model.WikiPage
	if err := query.DB.Preload("Project").First(&w, id).Error; err != nil {
		response.NotFoundError(c, "wiki page not found", response.InvalidObject)
		return nil, false
	}
	if !w.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return nil, false
	}
	return &w, true
}

func RegisterWiki(g *gin.RouterGroup) {
	g.GET("/projects/:project_id/wiki", ListWikiPages)
	g.POST("/projects/:project_id/wiki", CreateWikiPage)
	g.GET("/projects/:project_id/wiki/:slug", GetWikiPage)
	g.PUT("/wiki-pages/:id", UpdateWikiPage)
	g.DELETE("/wiki-pages/:id", DeleteWikiPage)
}
