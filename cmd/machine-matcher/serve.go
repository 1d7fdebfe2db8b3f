package main

import (
	"context"
	"net"
	"strconv"

	"github.com/filswan/go-swan-lib/logs"
	"github.com/urfave/cli/v2"

	"github.com/lagrangedao/go-machine-matcher/internal/serving"
	"github.com/lagrangedao/go-machine-matcher/util"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Start the prediction service with the echo pipeline",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "app-host",
			Usage: "Bind socket to this host",
			Value: "0.0.0.0",
		},
		&cli.IntFlag{
			Name:  "app-port",
			Usage: "Bind socket to this port",
			Value: 8080,
		},
	},
	Action: func(cctx *cli.Context) error {
		server := serving.NewServer(context.Background(), serving.EchoStages{}, serving.StaticModel("echo"))

		addr := net.JoinHostPort(cctx.String("app-host"), strconv.Itoa(cctx.Int("app-port")))
		logs.GetLogger().Infof("prediction service listening on %s", addr)
		httpStopper, err := util.ServeHttp(server.Handler(), "prediction", addr, "", "")
		if err != nil {
			return err
		}

		finishCh := util.MonitorShutdown(make(chan struct{}),
			util.ShutdownHandler{Component: "prediction", StopFunc: httpStopper},
		)
		<-finishCh
		return nil
	},
}
