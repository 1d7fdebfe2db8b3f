package models

type CatalogEntry struct {
	Name                  string              `json:"name" yaml:"name"`
	CPUCores              int                 `json:"cpu_cores" yaml:"cpu_cores"`
	RAMGiB                int                 `json:"ram_gib" yaml:"ram_gib"`
	SupportedAccelerators []AcceleratorOption `json:"supported_accelerators,omitempty" yaml:"supported_accelerators"`
}

// SupportsAccelerators reports whether any accelerator can be attached to the tier.
func (e CatalogEntry) SupportsAccelerators() bool {
	return len(e.SupportedAccelerators) > 0
}

type AcceleratorOption struct {
	Type            string `json:"type" yaml:"type"`
	SupportedCounts []int  `json:"supported_counts" yaml:"supported_counts"`
}

type ResourceRequest struct {
	CPUCores         int    `json:"cpu_cores"`
	RAMGiB           int    `json:"ram_gib"`
	AcceleratorType  string `json:"accelerator_type,omitempty"`
	AcceleratorCount int    `json:"accelerator_count,omitempty"`
}

// WantsAccelerator is true when both halves of the accelerator pair are set.
func (r ResourceRequest) WantsAccelerator() bool {
	return r.AcceleratorType != "" && r.AcceleratorCount != 0
}

type Selection struct {
	MachineName      string `json:"machine_name"`
	CPUCores         int    `json:"cpu_cores"`
	RAMGiB           int    `json:"ram_gib"`
	AcceleratorType  string `json:"accelerator_type,omitempty"`
	AcceleratorCount int    `json:"accelerator_count,omitempty"`
}

type WarningKind string

const (
	InsufficientCapacity         WarningKind = "InsufficientCapacity"
	InsufficientAcceleratorCount WarningKind = "InsufficientAcceleratorCount"
)

type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return string(w.Kind) + ": " + w.Message
}
