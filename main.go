package main

import (
	"fmt"
	"os"

	"collab/config"
	"collab/dao/query"
	"collab/logutils"
	"collab/metrics"
	"collab/service"
	"collab/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	r := gin.Default()
	if err := query.InitDB(); err != nil {
		fmt.Println("err init:", err)
		os.Exit(1)
	}

	cfg := config.GetConfig()

	store, err := storage.NewStore(cfg)
	if err != nil {
		logutils.Log.Warnf("file storage unavailable: %v", err)
	} else {
		service.SetStore(store)
	}

	r.Use(metrics.New().Middleware())
	r.GET("/metrics", metrics.Handler())

	public := r.Group("api")
	service.RegisterAuth(public)

	api := r.Group("api", service.AuthRequired())
	service.RegisterUser(api)
	service.RegisterCompany(api)
	service.RegisterProject(api)
	service.RegisterFolder(api)
	service.RegisterFile(api)
	service.RegisterMessage(api)
	service.RegisterMilestone(api)
	service.RegisterTask(api)
	service.RegisterTime(api)
	service.RegisterComment(api)
	service.RegisterTag(api)
	service.RegisterWiki(api)
	service.RegisterLog(api)

	if err := r.Run(cfg.ListenAddr); err != nil {
		logutils.Log.Fatal(err)
	}
}
