package main

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"

	"github.com/lagrangedao/go-machine-matcher/build"
)

const (
	FlagRepo = "repo"
)

func main() {
	app := &cli.App{
		Name:                 "machine-matcher",
		Usage:                "Select the smallest machine type, and accelerator, that fits a requested compute profile.",
		EnableBashCompletion: true,
		Version:              build.UserVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    FlagRepo,
				EnvVars: []string{"MATCHER_PATH"},
				Usage:   "repo path holding config.toml",
				Value:   "~/.machine-matcher",
			},
		},
		Commands: []*cli.Command{
			runCmd,
			selectCmd,
			catalogCmd,
			deployCmd,
			serveCmd,
		},
	}
	app.Setup()

	if err := app.Run(os.Args); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func repoPath(cctx *cli.Context) (string, error) {
	return homedir.Expand(cctx.String(FlagRepo))
}
