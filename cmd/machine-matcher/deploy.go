package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/lagrangedao/go-machine-matcher/conf"
	"github.com/lagrangedao/go-machine-matcher/internal/deploy"
	"github.com/lagrangedao/go-machine-matcher/internal/initializer"
	"github.com/lagrangedao/go-machine-matcher/util"
)

var deployCmd = &cli.Command{
	Name:  "deploy",
	Usage: "Plan a model deployment on the selected machine and run it against the dry-run control plane",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:     "model-name",
			Usage:    "Model name to be deployed",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "model-version",
			Usage:    "Model version",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "git-branch",
			Usage:    "Git branch name",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "endpoint-name",
			Usage: "Endpoint name, defaults to the model name",
		},
		&cli.StringSliceFlag{
			Name:  "existing-model",
			Usage: "model names the dry-run control plane treats as already uploaded",
		},
		&cli.BoolFlag{
			Name:  "plan-only",
			Usage: "print the plan without executing it",
		},
	}, resourceFlags...),
	Action: func(cctx *cli.Context) error {
		repo, err := repoPath(cctx)
		if err != nil {
			return err
		}
		m, err := initializer.ProjectInit(repo)
		if err != nil {
			return err
		}

		plane := deploy.NewDryRunControlPlane(cctx.StringSlice("existing-model")...)
		orchestrator := deploy.NewOrchestrator(m, plane, settingsFromConfig(conf.GetConfig().DEPLOY))

		plan, warnings, err := orchestrator.Plan(deploy.Request{
			ModelName:    cctx.String("model-name"),
			Version:      cctx.String("model-version"),
			GitBranch:    cctx.String("git-branch"),
			EndpointName: cctx.String("endpoint-name"),
			Resources:    resourceRequestFromFlags(cctx),
		})
		if err != nil {
			printSelectError(err)
			return err
		}
		printWarnings(warnings)

		out, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		if cctx.Bool("plan-only") {
			return nil
		}

		ctx, cancel := util.ReqContext(context.Background())
		defer cancel()
		result, err := orchestrator.Execute(ctx, plan)
		if err != nil {
			return err
		}
		fmt.Printf("model: %s\nendpoint: %s\nnew version: %t\n", result.ModelName, result.EndpointName, result.NewVersion)
		return nil
	},
}

func settingsFromConfig(c conf.DEPLOY) deploy.Settings {
	return deploy.Settings{
		Project:         c.Project,
		Location:        c.Location,
		BucketName:      c.BucketName,
		ServiceAccount:  c.ServiceAccount,
		ServingImageUri: c.ServingImageUri,
		ContainerPort:   c.ContainerPort,
		AppPort:         c.AppPort,
		ApplicationName: c.ApplicationName,
		ProjectName:     c.ProjectName,
	}
}
