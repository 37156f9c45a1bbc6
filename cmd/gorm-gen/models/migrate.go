// Migration script
package main

import (
	"fmt"

	"collab/dao/model"
	"collab/dao/query"
	"collab/util"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectPostgres() *gorm.DB {
	// Connect to the database
	dsn := `host=127.0.0.1 user=postgres password=postgres
		dbname=collab port=5432 sslmode=disable TimeZone=UTC`
	db, err := gorm.Open(postgres.Open(dsn))
	if err != nil {
		panic(fmt.Errorf("connect to postgres: %w", err))
	}
	return db
}

func main() {
	db := ConnectPostgres()

	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		// your migrations here
		{
			// add wiki_pages table
			ID: "2026021011300",
			Migrate: func(tx *gorm.DB) error {
				// it's a good practice to copy the struct inside the function,
				// so side effects are prevented if the original struct changes during the time
				type WikiPage struct {
					gorm.Model
					Title   string `gorm:"type:varchar(256);not null"`
					Slug    string `gorm:"type:varchar(256);not null;uniqueIndex:idx_wiki_project_slug"`
					Content string `gorm:"type:text"`

					ProjectID uint `gorm:"uniqueIndex:idx_wiki_project_slug"`

					CreatedByID uint
					UpdatedByID uint
				}
				return tx.Migrator().CreateTable(&WikiPage{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("wiki_pages")
			},
		},
	})

	m.InitSchema(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(query.AllModels()...); err != nil {
			return err
		}

		// seed the owner company and the initial administrator
		owner := model.Company{
			Name:    "Owner Company",
			IsOwner: true,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		hash, err := util.HashPassword("admin")
		if err != nil {
			return err
		}
		admin := model.User{
			Username:    "admin",
			DisplayName: "Administrator",
			Password:    hash,
			IsAdmin:     true,
			CompanyID:   owner.ID,
		}
		return tx.Create(&admin).Error
	})

	if err := m.Migrate(); err != nil {
		panic(fmt.Errorf("could not migrate: %w", err))
	}
}
