// Description: generate Model structs and CRUD code for all tables
package main

import (
	"fmt"

	"collab/dao/query"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
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
	g := gen.NewGenerator(gen.Config{
		OutPath: "./dao/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	g.UseDB(ConnectPostgres())

	g.ApplyBasic(query.AllModels()...)

	g.Execute()
}
