package query

import (
	"time"

	"collab/dao/model"

	"gorm.io/gorm"
)

// Entity mutations go through the functions below so every create, update,
// completion transition and destroy appends exactly one audit-log row, and
// the entity write and its log row commit or roll back together.

// Create persists rec and its add log entry. A project can never arrive
// completed: the completion timestamp is forced clear regardless of input.
func Create(db *gorm.DB, actorID uint, rec model.Loggable) error {
	if p, ok := rec.(*model.Project); ok {
		p.CompletedOn = nil
		p.CompletedByID = 0
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		return tx.Create(model.NewLog(rec, actorID, model.ActionAdd)).Error
	})
}

// Update saves rec and appends an edit log entry.
func Update(db *gorm.DB, actorID uint, rec model.Loggable) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		return tx.Create(model.NewLog(rec, actorID, model.ActionEdit)).Error
	})
}

// SetCompleted applies the explicit completion transition: close stamps
// completed_on and logs close, reopen clears it and logs open. Plain
// updates never touch the completion fields.
func SetCompleted(db *gorm.DB, actorID uint, rec model.Completable, done bool) error {
	action := model.ActionOpen
	var on *time.Time
	var byID uint
	if done {
		now := time.Now().UTC()
		on = &now
		byID = actorID
		action = model.ActionClose
	}
	rec.SetCompleted(on, byID)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		return tx.Create(model.NewLog(rec, actorID, action)).Error
	})
}

// LogSilent appends an audit entry that the activity feeds skip.
// Membership and permission churn is recorded this way.
func LogSilent(db *gorm.DB, actorID uint, rec model.Loggable, action model.LogAction) error {
	logRow := model.NewLog(rec, actorID, action)
	logRow.IsSilent = true
	return db.Create(logRow).Error
}

// Destroy removes rec and appends its delete log entry.
func Destroy(db *gorm.DB, actorID uint, rec model.Loggable) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(rec).Error; err != nil {
			return err
		}
		return tx.Create(model.NewLog(rec, actorID, model.ActionDelete)).Error
	})
}

// DestroyUser removes the account together with its membership rows so no
// project keeps a dangling member.
func DestroyUser(db *gorm.DB, actorID uint, u *model.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", u.ID).Delete(&model.ProjectUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", u.ID).Delete(&model.MessageSubscription{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(u).Error; err != nil {
			return err
		}
		return tx.Create(model.NewLog(u, actorID, model.ActionDelete)).Error
	})
}

// DestroyProject removes the project and every record scoped to it:
// folders, files, messages, categories, subscriptions, milestones, task
// lists, tasks, times, comments, wiki pages, tags, logs, attachment rows,
// membership rows and company joins. The final delete entry is recorded
// outside the project scope so the log cascade cannot remove it.
func DestroyProject(db *gorm.DB, actorID uint, p *model.Project) error {
	return db.Transaction(func(tx *gorm.DB) error {
		pid := p.ID

		fileIDs := tx.Model(&model.ProjectFile{}).Select("id").Where("project_id = ?", pid)
		if err := tx.Where("file_id IN (?)", fileIDs).Delete(&model.AttachedFile{}).Error; err != nil {
			return err
		}
		messageIDs := tx.Model(&model.ProjectMessage{}).Select("id").Where("project_id = ?", pid)
		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&model.MessageSubscription{}).Error; err != nil {
			return err
		}

		scoped := []any{
			&model.ProjectFolder{},
			&model.ProjectFile{},
			&model.ProjectMessage{},
			&model.ProjectMessageCategory{},
			&model.ProjectMilestone{},
			&model.ProjectTask{},
			&model.ProjectTaskList{},
			&model.ProjectTime{},
			&model.Comment{},
			&model.WikiPage{},
			&model.Tag{},
			&model.ApplicationLog{},
			&model.ProjectUser{},
		}
		for _, rec := range scoped {
			if err := tx.Where("project_id = ?", pid).Delete(rec).Error; err != nil {
				return err
			}
		}

		// many2many join rows have no model; clear them directly
		if err := tx.Exec("DELETE FROM project_companies WHERE project_id = ?", pid).Error; err != nil {
			return err
		}

		if err := tx.Delete(p).Error; err != nil {
			return err
		}

		logRow := model.NewLog(p, actorID, model.ActionDelete)
		logRow.ProjectID = 0
		return tx.Create(logRow).Error
	})
}
