package yaml

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/errgo.v2/errors"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/lagrangedao/go-machine-matcher/internal/models"
)

const gib = 1 << 30

type CatalogYamlV1 struct {
	Version  string    `yaml:"version"`
	Machines []Machine `yaml:"machines"`
}

type Machine struct {
	Name         string        `yaml:"name"`
	Cpu          int           `yaml:"cpu"`
	Memory       string        `yaml:"memory"`
	Accelerators []Accelerator `yaml:"accelerators"`
}

type Accelerator struct {
	Type   string `yaml:"type"`
	Counts []int  `yaml:"counts"`
}

func (cy *CatalogYamlV1) checkRequired() error {
	if len(cy.Machines) <= 0 {
		return errors.New("at least one machine must be defined")
	}
	return nil
}

func (cy *CatalogYamlV1) ToCatalogEntries() ([]models.CatalogEntry, error) {
	if err := cy.checkRequired(); err != nil {
		return nil, err
	}

	entries := make([]models.CatalogEntry, 0, len(cy.Machines))
	for _, machine := range cy.Machines {
		ramGiB, err := parseMemoryGiB(machine.Memory)
		if err != nil {
			return nil, fmt.Errorf("machine %s: %w", machine.Name, err)
		}

		entry := models.CatalogEntry{
			Name:     machine.Name,
			CPUCores: machine.Cpu,
			RAMGiB:   ramGiB,
		}
		for _, accelerator := range machine.Accelerators {
			counts := make([]int, len(accelerator.Counts))
			copy(counts, accelerator.Counts)
			entry.SupportedAccelerators = append(entry.SupportedAccelerators, models.AcceleratorOption{
				Type:            accelerator.Type,
				SupportedCounts: counts,
			})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseMemoryGiB accepts a bare integer (GiB) or a quantity such as "15Gi".
// Quantities must be a whole number of GiB.
func parseMemoryGiB(memory string) (int, error) {
	memory = strings.TrimSpace(memory)
	if memory == "" {
		return 0, errors.New("memory is required")
	}
	if v, err := strconv.Atoi(memory); err == nil {
		return v, nil
	}

	quantity, err := resource.ParseQuantity(memory)
	if err != nil {
		return 0, fmt.Errorf("invalid memory %q: %w", memory, err)
	}
	bytes := quantity.Value()
	if bytes%gib != 0 {
		return 0, fmt.Errorf("memory %q is not a whole number of GiB", memory)
	}
	return int(bytes / gib), nil
}
