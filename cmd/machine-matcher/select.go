package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/lagrangedao/go-machine-matcher/internal/initializer"
	"github.com/lagrangedao/go-machine-matcher/internal/matcher"
	"github.com/lagrangedao/go-machine-matcher/internal/models"
)

var resourceFlags = []cli.Flag{
	&cli.IntFlag{
		Name:     "cpu-cores",
		Usage:    "Number of CPU cores required",
		Required: true,
	},
	&cli.IntFlag{
		Name:     "ram-gb",
		Usage:    "Amount of RAM required in gigabytes",
		Required: true,
	},
	&cli.StringFlag{
		Name:  "gpu-type",
		Usage: "Type of GPU required, to be provided with --gpu-cores",
	},
	&cli.IntFlag{
		Name:  "gpu-cores",
		Usage: "Number of GPUs required, to be provided with --gpu-type",
	},
}

var selectCmd = &cli.Command{
	Name:  "select",
	Usage: "Select the machine type closest to the requested resources",
	Flags: append([]cli.Flag{
		catalogFlag,
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the selection as JSON",
		},
	}, resourceFlags...),
	Action: func(cctx *cli.Context) error {
		m, err := matcherFromFlags(cctx)
		if err != nil {
			return err
		}

		selection, warnings, err := m.SelectMachine(resourceRequestFromFlags(cctx))
		if err != nil {
			printSelectError(err)
			return err
		}
		printWarnings(warnings)

		if cctx.Bool("json") {
			out, err := json.MarshalIndent(selection, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		data := [][]string{
			{"MACHINE TYPE:", selection.MachineName},
			{"CPU CORES:", strconv.Itoa(selection.CPUCores)},
			{"RAM:", strconv.Itoa(selection.RAMGiB) + " GiB"},
		}
		if selection.AcceleratorType != "" {
			data = append(data,
				[]string{"ACCELERATOR TYPE:", selection.AcceleratorType},
				[]string{"ACCELERATOR COUNT:", strconv.Itoa(selection.AcceleratorCount)})
		}

		var rowColors []RowColor
		if len(warnings) > 0 {
			rowColors = append(rowColors, RowColor{
				row:    0,
				column: []int{1},
				color:  []tablewriter.Colors{{tablewriter.Bold, tablewriter.FgYellowColor}},
			})
		}
		NewVisualTable([]string{"SELECTION", ""}, data, rowColors).Generate(os.Stdout)
		return nil
	},
}

func resourceRequestFromFlags(cctx *cli.Context) models.ResourceRequest {
	return models.ResourceRequest{
		CPUCores:         cctx.Int("cpu-cores"),
		RAMGiB:           cctx.Int("ram-gb"),
		AcceleratorType:  cctx.String("gpu-type"),
		AcceleratorCount: cctx.Int("gpu-cores"),
	}
}

// matcherFromFlags prefers --catalog, then the catalog of config.toml in the
// repo, then the built-in machine types.
func matcherFromFlags(cctx *cli.Context) (*matcher.Matcher, error) {
	if path := cctx.String("catalog"); path != "" {
		return initializer.NewMatcher(path)
	}

	repo, err := repoPath(cctx)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(repo, "config.toml")); err == nil {
		return initializer.ProjectInit(repo)
	}
	return initializer.NewMatcher("")
}

func printWarnings(warnings []models.Warning) {
	warn := color.New(color.FgYellow, color.Bold)
	for _, w := range warnings {
		warn.Fprintf(os.Stderr, "WARNING %s: %s\n", w.Kind, w.Message)
	}
}

func printSelectError(err error) {
	var unsupported *matcher.UnsupportedAcceleratorError
	if errors.As(err, &unsupported) {
		color.New(color.FgRed).Fprintf(os.Stderr, "machine %s supports: %v\n", unsupported.Machine, unsupported.Supported)
	}
}
