package main

import (
	"strconv"
	"time"

	"github.com/filswan/go-swan-lib/logs"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/itsjamie/gin-cors"
	"github.com/urfave/cli/v2"

	"github.com/lagrangedao/go-machine-matcher/conf"
	"github.com/lagrangedao/go-machine-matcher/internal/computing"
	"github.com/lagrangedao/go-machine-matcher/internal/initializer"
	"github.com/lagrangedao/go-machine-matcher/util"
)

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "Start the machine selection API",
	Action: func(cctx *cli.Context) error {
		logs.GetLogger().Info("Start in machine matcher mode.")

		repo, err := repoPath(cctx)
		if err != nil {
			return err
		}
		m, err := initializer.ProjectInit(repo)
		if err != nil {
			return err
		}

		r := gin.Default()
		r.Use(cors.Middleware(cors.Config{
			Origins:         "*",
			Methods:         "GET, POST",
			RequestHeaders:  "Origin, Authorization, Content-Type",
			ExposedHeaders:  "",
			MaxAge:          50 * time.Second,
			ValidateHeaders: false,
		}))
		pprof.Register(r)

		v1 := r.Group("/api/v1")
		computing.NewMatcherService(m).RegisterRoutes(v1.Group("/matcher"))

		api := conf.GetConfig().API
		httpStopper, err := util.ServeHttp(r, "matcher-api", ":"+strconv.Itoa(api.Port), api.CrtFile, api.KeyFile)
		if err != nil {
			logs.GetLogger().Fatalf("failed to start matcher-api endpoint: %s", err)
		}

		shutdownChan := make(chan struct{})
		finishCh := util.MonitorShutdown(shutdownChan,
			util.ShutdownHandler{Component: "matcher-api", StopFunc: httpStopper},
		)
		<-finishCh

		return nil
	},
}
