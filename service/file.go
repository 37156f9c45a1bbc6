package service

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"collab/dao/model"
	"collab/dao/query"
	"collab/logutils"
	"collab/response"
	"collab/storage"

	"github.com/gin-gonic/gin"
)

var store *storage.Store

// SetStore wires the object store; handlers refuse uploads until it is set.
func SetStore(s *storage.Store) {
	store = s
}

type FileResp struct {
	ID          uint      `json:"id"`
	Filename    string    `json:"filename"`
	Description string    `json:"description"`
	ProjectID   uint      `json:"projectId"`
	FolderID    uint      `json:"folderId"`
	IsPrivate   bool      `json:"isPrivate"`
	IsImportant bool      `json:"isImportant"`
	FileSize    int64     `json:"fileSize"`
	ContentType string    `json:"contentType"`
	CreatedByID uint      `json:"createdById"`
	CreatedOn   time.Time `json:"createdOn"`
}

func fileResp(f *model.ProjectFile) FileResp {
	return FileResp{
		ID:          f.ID,
		Filename:    f.Filename,
		Description: f.Description,
		ProjectID:   f.ProjectID,
		FolderID:    f.FolderID,
		IsPrivate:   f.IsPrivate,
		IsImportant: f.IsImportant,
		FileSize:    f.FileSize,
		ContentType: f.ContentType,
		CreatedByID: f.CreatedByID,
		CreatedOn:   f.CreatedAt,
	}
}

func ListFiles(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)

	q := query.DB.Where("project_id = ? AND is_visible = ?", p.ID, true)
	if !pc.MemberOfOwner() {
		q = q.Where("is_private = ?", false)
	}
	if folderID := c.Query("folder_id"); folderID != "" {
		q = q.Where("folder_id = ?", folderID)
	}

	var files []model.ProjectFile
	if err := q.Order("created_at DESC").Find(&files).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	resp := make([]FileResp, 0, len(files))
	for i := range files {
		resp = append(resp, fileResp(&files[i]))
	}
	response.Success(c, resp)
}

// UploadFiles stores each payload of the multipart form. A rejected file
// does not fail the request: accepted files commit and the response
// carries a warning with the rejected count.
func UploadFiles(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !model.FileCanBeCreatedBy(pc, p) {
		response.PermissionError(c)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	uploads := form.File["uploaded_files"]
	if len(uploads) == 0 {
		response.BadRequestError(c, "no files in request")
		return
	}

	folderID, _ := strconv.ParseUint(c.PostForm("folder_id"), 10, 64)
	isPrivate := c.PostForm("is_private") == "true"
	description := c.PostForm("description")

	stored := 0
	var created []FileResp
	for _, fh := range uploads {
		rec, err := storeUpload(c, pc.UserID(), p.ID, uint(folderID), fh, isPrivate, description)
		if err != nil {
			logutils.Log.WithFields(logutils.Fields{"file": fh.Filename}).Error(err)
			continue
		}
		stored++
		created = append(created, fileResp(rec))
	}

	if stored == 0 {
		response.Error(c, "all files rejected", response.NotSpecified)
		return
	}
	if stored < len(uploads) {
		response.SuccessWithWarning(c, created,
			fmt.Sprintf("%d of %d files rejected", len(uploads)-stored, len(uploads)))
		return
	}
	response.Success(c, created)
}

func storeUpload(c *gin.Context, actorID, projectID, folderID uint,
	fh *multipart.FileHeader, isPrivate bool, description string) (*model.ProjectFile, error) {
	if store == nil {
		return nil, fmt.Errorf("file storage not configured")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	key, err := store.Put(c.Request.Context(), src, fh.Size, contentType)
	if err != nil {
		return nil, err
	}

	rec := model.ProjectFile{
		Filename:    fh.Filename,
		Description: description,
		ProjectID:   projectID,
		FolderID:    folderID,
		IsPrivate:   isPrivate,
		IsVisible:   true,
		StorageKey:  key,
		FileSize:    fh.Size,
		ContentType: contentType,
		CreatedByID: actorID,
	}
	if err := query.Create(query.DB, actorID, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func DownloadFile(c *gin.Context) {
	f, ok := obtainFile(c)
	if !ok {
		return
	}
	if !f.CanBeDownloadedBy(permContext(c)) {
		response.PermissionError(c)
		return
	}
	if store == nil {
		response.Error(c, "file storage not configured", response.NotSpecified)
		return
	}

	r, err := store.Get(c.Request.Context(), f.StorageKey)
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	defer r.Close()
	c.DataFromReader(http.StatusOK, f.FileSize, f.ContentType, r, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", f.Filename),
	})
}

type FileUpdateReq struct {
	Filename    string `json:"filename" binding:"required"`
	Description string `json:"description"`
	FolderID    uint   `json:"folderId"`
	IsPrivate   bool   `json:"isPrivate"`
	IsImportant bool   `json:"isImportant"`
	IsLocked    bool   `json:"isLocked"`
}

func UpdateFile(c *gin.Context) {
	f, ok := obtainFile(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !f.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req FileUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	f.Filename = req.Filename
	f.Description = req.Description
	f.FolderID = req.FolderID
	f.IsPrivate = req.IsPrivate
	f.IsImportant = req.IsImportant
	f.IsLocked = req.IsLocked
	f.UpdatedByID = pc.UserID()

	if err := query.Update(query.DB, pc.UserID(), f); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, fileResp(f))
}

func DeleteFile(c *gin.Context) {
	f, ok := obtainFile(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !f.CanBeDeletedBy(pc) {
		response.PermissionError(c)
		return
	}

	if err := query.Destroy(query.DB, pc.UserID(), f); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	// storage cleanup is best effort once the record is gone
	if store != nil {
		if err := store.Remove(c.Request.Context(), f.StorageKey); err != nil {
			logutils.Log.WithFields(logutils.Fields{"key": f.StorageKey}).Warn(err)
		}
	}
	response.Success(c, nil)
}

func obtainFile(c *gin.Context) (*model.ProjectFile, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var f model.ProjectFile
	if err := query.DB.Preload("Project").First(&f, id).Error; err != nil {
		response.NotFoundError(c, "file not found", response.InvalidObject)
		return nil, false
	}
	if !f.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return nil, false
	}
	return &f, true
}

// storeAttachments persists upload payloads bound to a comment, returning
// how many of the submitted files were stored.
func storeAttachments(c *gin.Context, actorID uint, comment *model.Comment,
	uploads []*multipart.FileHeader) (stored, total int) {
	total = len(uploads)
	for _, fh := range uploads {
		rec, err := storeUpload(c, actorID, comment.ProjectID, 0, fh, comment.IsPrivate, "")
		if err != nil {
			logutils.Log.WithFields(logutils.Fields{"file": fh.Filename}).Error(err)
			continue
		}
		attach := model.AttachedFile{
			RelObjectType: comment.ObjectType(),
			RelObjectID:   comment.ID,
			FileID:        rec.ID,
		}
		if err := query.DB.Create(&attach).Error; err != nil {
			logutils.Log.Error(err)
			continue
		}
		stored++
	}
	return stored, total
}

func RegisterFile(g *gin.RouterGroup) {
	g.GET("/projects/:project_id/files", ListFiles)
	g.POST("/projects/:project_id/files", UploadFiles)
	g.GET("/files/:id/download", DownloadFile)
	g.PUT("/files/:id", UpdateFile)
	g.DELETE("/files/:id", DeleteFile)
}
