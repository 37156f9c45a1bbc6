package service

import (
	"collab/dao/model"
	"collab/dao/query"
	"collab/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FolderReq struct {
	Name string `json:"name" binding:"required"`
}

type FolderResp struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ProjectID uint   `json:"projectId"`
	FileCount int64  `json:"fileCount"`
}

func ListFolders(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}

	var folders []model.ProjectFolder
	if err := query.DB.Where("project_id = ?", p.ID).Order("name ASC").Find(&folders).Error; err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}

	resp := make([]FolderResp, 0, len(folders))
	for i := range folders {
		var count int64
		query.DB.Model(&model.ProjectFile{}).Where("folder_id = ?", folders[i].ID).Count(&count)
		resp = append(resp, FolderResp{
			ID:        folders[i].ID,
			Name:      folders[i].Name,
			ProjectID: folders[i].ProjectID,
			FileCount: count,
		})
	}
	response.Success(c, resp)
}

func CreateFolder(c *gin.Context) {
	p, ok := obtainProject(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !model.FolderCanBeCreatedBy(pc, p) {
		response.PermissionError(c)
		return
	}

	var req FolderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if taken, err := folderNameTaken(p.ID, req.Name, 0); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	} else if taken {
		response.ValidationError(c, map[string]string{"name": "has already been taken"})
		return
	}

	folder := model.ProjectFolder{
		Name:        req.Name,
		ProjectID:   p.ID,
		CreatedByID: pc.UserID(),
	}
	if err := query.Create(query.DB, pc.UserID(), &folder); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, FolderResp{ID: folder.ID, Name: folder.Name, ProjectID: folder.ProjectID})
}

func UpdateFolder(c *gin.Context) {
	folder, ok := obtainFolder(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !folder.CanBeEditedBy(pc) {
		response.PermissionError(c)
		return
	}

	var req FolderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if taken, err := folderNameTaken(folder.ProjectID, req.Name, folder.ID); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	} else if taken {
		response.ValidationError(c, map[string]string{"name": "has already been taken"})
		return
	}

	folder.Name = req.Name
	folder.UpdatedByID = pc.UserID()
	if err := query.Update(query.DB, pc.UserID(), folder); err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, FolderResp{ID: folder.ID, Name: folder.Name, ProjectID: folder.ProjectID})
}

// DeleteFolder removes the folder; its files fall back to the project
// root rather than being destroyed.
func DeleteFolder(c *gin.Context) {
	folder, ok := obtainFolder(c)
	if !ok {
		return
	}
	pc := permContext(c)
	if !folder.CanBeDeletedBy(pc) {
		response.PermissionError(c)
		return
	}

	err := query.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ProjectFile{}).Where("folder_id = ?", folder.ID).
			Update("folder_id", 0).Error; err != nil {
			return err
		}
		return query.Destroy(tx, pc.UserID(), folder)
	})
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

func folderNameTaken(projectID uint, name string, excludeID uint) (bool, error) {
	var count int64
	q := query.DB.Model(&model.ProjectFolder{}).
		Where("project_id = ? AND name = ?", projectID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func obtainFolder(c *gin.Context) (*model.ProjectFolder, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var folder model.ProjectFolder
	if err := query.DB.Preload("Project").First(&folder, id).Error; err != nil {
		response.NotFoundError(c, "folder not found", response.InvalidObject)
		return nil, false
	}
	if !folder.CanBeSeenBy(permContext(c)) {
		response.PermissionError(c)
		return nil, false
	}
	return &folder, true
}

func RegisterFolder(g *gin.RouterGroup) {
	g.GET("/projects/:project_id/folders", ListFolders)
	g.POST("/projects/:project_id/folders", CreateFolder)
	g.PUT("/folders/:id", UpdateFolder)
	g.DELETE("/folders/:id", DeleteFolder)
}
