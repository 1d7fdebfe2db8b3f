package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/lagrangedao/go-machine-matcher/internal/models"
)

var catalogFlag = &cli.StringFlag{
	Name:  "catalog",
	Usage: "catalog YAML file, overrides the catalog of config.toml",
}

var catalogCmd = &cli.Command{
	Name:  "catalog",
	Usage: "Inspect the machine catalog",
	Subcommands: []*cli.Command{
		catalogList,
	},
}

var catalogList = &cli.Command{
	Name:  "list",
	Usage: "List machine types and their accelerators",
	Flags: []cli.Flag{catalogFlag},
	Action: func(cctx *cli.Context) error {
		m, err := matcherFromFlags(cctx)
		if err != nil {
			return err
		}

		var data [][]string
		for _, entry := range m.Catalog() {
			data = append(data, []string{
				entry.Name,
				strconv.Itoa(entry.CPUCores),
				strconv.Itoa(entry.RAMGiB) + " GiB",
				formatAccelerators(entry.SupportedAccelerators),
			})
		}

		header := []string{"NAME", "CPU", "RAM", "ACCELERATORS"}
		fmt.Println("")
		NewVisualTable(header, data, nil).Generate(os.Stdout)
		return nil
	},
}

func formatAccelerators(options []models.AcceleratorOption) string {
	if len(options) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(options))
	for _, option := range options {
		counts := make([]string, 0, len(option.SupportedCounts))
		for _, count := range option.SupportedCounts {
			counts = append(counts, strconv.Itoa(count))
		}
		parts = append(parts, fmt.Sprintf("%s{%s}", option.Type, strings.Join(counts, ",")))
	}
	return strings.Join(parts, " ")
}
