package matcher

import (
	"fmt"
	"sort"

	"github.com/lagrangedao/go-machine-matcher/internal/models"
)

const (
	capacityWarningMessage = "requested CPU/RAM exceeds catalog maximum; using closest available tier"
	countWarningMessage    = "requested accelerator count exceeds the maximum supported by the tier; using the largest available count"
)

// Matcher selects the smallest machine of a fixed catalog able to serve a
// ResourceRequest. It holds no mutable state, so one instance may be shared by
// any number of goroutines.
type Matcher struct {
	catalog []models.CatalogEntry
}

// New validates entries and keeps a private copy of them. Accelerator counts are
// sorted ascending and de-duplicated.
func New(entries []models.CatalogEntry) (*Matcher, error) {
	if len(entries) == 0 {
		return nil, &CatalogError{Reason: "catalog is empty"}
	}

	names := make(map[string]struct{}, len(entries))
	catalog := make([]models.CatalogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return nil, &CatalogError{Reason: "machine name is empty"}
		}
		if _, ok := names[entry.Name]; ok {
			return nil, &CatalogError{Reason: fmt.Sprintf("duplicate machine name %s", entry.Name)}
		}
		names[entry.Name] = struct{}{}

		if entry.CPUCores <= 0 || entry.RAMGiB <= 0 {
			return nil, &CatalogError{Reason: fmt.Sprintf("machine %s must have positive cpu and ram, got cpu=%d ram=%d",
				entry.Name, entry.CPUCores, entry.RAMGiB)}
		}

		copied, err := copyEntry(entry)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, copied)
	}

	return &Matcher{catalog: catalog}, nil
}

func copyEntry(entry models.CatalogEntry) (models.CatalogEntry, error) {
	out := models.CatalogEntry{
		Name:     entry.Name,
		CPUCores: entry.CPUCores,
		RAMGiB:   entry.RAMGiB,
	}
	if len(entry.SupportedAccelerators) == 0 {
		return out, nil
	}

	out.SupportedAccelerators = make([]models.AcceleratorOption, 0, len(entry.SupportedAccelerators))
	for _, option := range entry.SupportedAccelerators {
		if option.Type == "" {
			return out, &CatalogError{Reason: fmt.Sprintf("machine %s has an accelerator without type", entry.Name)}
		}
		if len(option.SupportedCounts) == 0 {
			return out, &CatalogError{Reason: fmt.Sprintf("machine %s accelerator %s has no supported counts", entry.Name, option.Type)}
		}

		counts := make([]int, 0, len(option.SupportedCounts))
		seen := make(map[int]struct{}, len(option.SupportedCounts))
		for _, count := range option.SupportedCounts {
			if count <= 0 {
				return out, &CatalogError{Reason: fmt.Sprintf("machine %s accelerator %s has non-positive count %d", entry.Name, option.Type, count)}
			}
			if _, ok := seen[count]; ok {
				continue
			}
			seen[count] = struct{}{}
			counts = append(counts, count)
		}
		sort.Ints(counts)

		out.SupportedAccelerators = append(out.SupportedAccelerators, models.AcceleratorOption{
			Type:            option.Type,
			SupportedCounts: counts,
		})
	}
	return out, nil
}

// Catalog returns a copy of the machines known to the matcher, in catalog order.
func (m *Matcher) Catalog() []models.CatalogEntry {
	out := make([]models.CatalogEntry, 0, len(m.catalog))
	for _, entry := range m.catalog {
		copied, _ := copyEntry(entry)
		out = append(out, copied)
	}
	return out
}

// SelectMachine picks the tightest machine for req.
//
// Machines with enough RAM and CPU (and, when an accelerator is requested, any
// accelerator support at all) are candidates; the one with the smallest
// (RAM, CPU) wins. With no candidate the whole catalog is searched for the
// largest RAM, preferring machines that pass the accelerator gate, and an
// InsufficientCapacity warning is added. The accelerator type must then be
// offered by the chosen machine, and the smallest supported count covering the
// request is used, or the largest one with an InsufficientAcceleratorCount warning.
func (m *Matcher) SelectMachine(req models.ResourceRequest) (models.Selection, []models.Warning, error) {
	if err := validateRequest(req); err != nil {
		return models.Selection{}, nil, err
	}

	var warnings []models.Warning
	wantAccelerator := req.WantsAccelerator()

	machine, ok := m.tightestFit(req, wantAccelerator)
	if !ok {
		machine = m.closestAvailable(wantAccelerator)
		warnings = append(warnings, models.Warning{
			Kind:    models.InsufficientCapacity,
			Message: capacityWarningMessage,
		})
	}

	selection := models.Selection{
		MachineName: machine.Name,
		CPUCores:    machine.CPUCores,
		RAMGiB:      machine.RAMGiB,
	}
	if !wantAccelerator {
		return selection, warnings, nil
	}

	option, ok := findAccelerator(machine, req.AcceleratorType)
	if !ok {
		return models.Selection{}, nil, &UnsupportedAcceleratorError{
			Machine:   machine.Name,
			Requested: req.AcceleratorType,
			Supported: acceleratorTypes(machine),
		}
	}

	count, enough := pickCount(option.SupportedCounts, req.AcceleratorCount)
	if !enough {
		warnings = append(warnings, models.Warning{
			Kind:    models.InsufficientAcceleratorCount,
			Message: countWarningMessage,
		})
	}

	selection.AcceleratorType = option.Type
	selection.AcceleratorCount = count
	return selection, warnings, nil
}

func validateRequest(req models.ResourceRequest) error {
	if req.CPUCores <= 0 {
		return &InvalidRequestError{Reason: fmt.Sprintf("cpu cores must be positive, got %d", req.CPUCores)}
	}
	if req.RAMGiB <= 0 {
		return &InvalidRequestError{Reason: fmt.Sprintf("ram must be positive, got %d GiB", req.RAMGiB)}
	}

	typeSet := req.AcceleratorType != ""
	countSet := req.AcceleratorCount != 0
	if typeSet != countSet {
		return &InvalidRequestError{Reason: "accelerator type and accelerator count must be set together"}
	}
	if countSet && req.AcceleratorCount < 0 {
		return &InvalidRequestError{Reason: fmt.Sprintf("accelerator count must be positive, got %d", req.AcceleratorCount)}
	}
	return nil
}

func passesAcceleratorGate(entry models.CatalogEntry, wantAccelerator bool) bool {
	return !wantAccelerator || entry.SupportsAccelerators()
}

// tightestFit returns the candidate with the smallest (RAM, CPU). Ties keep
// catalog order.
func (m *Matcher) tightestFit(req models.ResourceRequest, wantAccelerator bool) (models.CatalogEntry, bool) {
	var best models.CatalogEntry
	found := false
	for _, entry := range m.catalog {
		if entry.RAMGiB < req.RAMGiB || entry.CPUCores < req.CPUCores {
			continue
		}
		if !passesAcceleratorGate(entry, wantAccelerator) {
			continue
		}
		if !found || entry.RAMGiB < best.RAMGiB ||
			(entry.RAMGiB == best.RAMGiB && entry.CPUCores < best.CPUCores) {
			best = entry
			found = true
		}
	}
	return best, found
}

// closestAvailable maximises (passes accelerator gate, RAM) over the whole
// catalog. CPU is not a tie-break here. Ties keep catalog order.
func (m *Matcher) closestAvailable(wantAccelerator bool) models.CatalogEntry {
	best := m.catalog[0]
	bestGate := passesAcceleratorGate(best, wantAccelerator)
	for _, entry := range m.catalog[1:] {
		gate := passesAcceleratorGate(entry, wantAccelerator)
		if (gate && !bestGate) || (gate == bestGate && entry.RAMGiB > best.RAMGiB) {
			best = entry
			bestGate = gate
		}
	}
	return best
}

func findAccelerator(entry models.CatalogEntry, acceleratorType string) (models.AcceleratorOption, bool) {
	for _, option := range entry.SupportedAccelerators {
		if option.Type == acceleratorType {
			return option, true
		}
	}
	return models.AcceleratorOption{}, false
}

func acceleratorTypes(entry models.CatalogEntry) []string {
	types := make([]string, 0, len(entry.SupportedAccelerators))
	seen := make(map[string]struct{}, len(entry.SupportedAccelerators))
	for _, option := range entry.SupportedAccelerators {
		if _, ok := seen[option.Type]; ok {
			continue
		}
		seen[option.Type] = struct{}{}
		types = append(types, option.Type)
	}
	return types
}

// pickCount expects counts sorted ascending and non-empty.
func pickCount(counts []int, requested int) (int, bool) {
	for _, count := range counts {
		if count >= requested {
			return count, true
		}
	}
	return counts[len(counts)-1], false
}
