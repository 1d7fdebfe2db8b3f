package common

import "github.com/lagrangedao/go-machine-matcher/internal/models"

const (
	NvidiaTeslaT4   = "NVIDIA_TESLA_T4"
	NvidiaTeslaK80  = "NVIDIA_TESLA_K80"
	NvidiaTeslaP100 = "NVIDIA_TESLA_P100"
	NvidiaTeslaV100 = "NVIDIA_TESLA_V100"
	NvidiaTeslaP4   = "NVIDIA_TESLA_P4"
)

func gpu(name string, counts ...int) models.AcceleratorOption {
	return models.AcceleratorOption{Type: name, SupportedCounts: counts}
}

// DefaultMachineTypes returns the built-in n1 catalog. A fresh slice is built on
// every call so callers may keep or modify it freely.
func DefaultMachineTypes() []models.CatalogEntry {
	return []models.CatalogEntry{
		{
			Name: "n1-standard-4", CPUCores: 4, RAMGiB: 15,
			SupportedAccelerators: []models.AcceleratorOption{
				gpu(NvidiaTeslaT4, 1, 2, 4),
				gpu(NvidiaTeslaK80, 1, 2, 4, 8),
				gpu(NvidiaTeslaP100, 1, 2, 4),
				gpu(NvidiaTeslaV100, 1, 2, 4, 8),
				gpu(NvidiaTeslaP4, 1, 2, 4),
			},
		},
		{
			Name: "n1-standard-8", CPUCores: 8, RAMGiB: 30,
			SupportedAccelerators: []models.AcceleratorOption{
				gpu(NvidiaTeslaT4, 1, 2, 4),
				gpu(NvidiaTeslaK80, 1, 2, 4, 8),
				gpu(NvidiaTeslaP100, 1, 2, 4),
				gpu(NvidiaTeslaV100, 1, 2, 4, 8),
				gpu(NvidiaTeslaP4, 1, 2, 4),
			},
		},
		{
			Name: "n1-standard-16", CPUCores: 16, RAMGiB: 60,
			SupportedAccelerators: []models.AcceleratorOption{
				gpu(NvidiaTeslaT4, 1, 2, 4),
				gpu(NvidiaTeslaK80, 2, 4, 8),
				gpu(NvidiaTeslaP100, 1, 2, 4),
				gpu(NvidiaTeslaV100, 2, 4, 8),
				gpu(NvidiaTeslaP4, 1, 2, 4),
			},
		},
		{
			Name: "n1-standard-32", CPUCores: 32, RAMGiB: 120,
			SupportedAccelerators: []models.AcceleratorOption{
				gpu(NvidiaTeslaT4, 2, 4),
				gpu(NvidiaTeslaK80, 4, 8),
				gpu(NvidiaTeslaP100, 2, 4),
				gpu(NvidiaTeslaV100, 4, 8),
				gpu(NvidiaTeslaP4, 2, 4),
			},
		},
		{
			Name: "n1-standard-64", CPUCores: 64, RAMGiB: 240,
			SupportedAccelerators: []models.AcceleratorOption{
				gpu(NvidiaTeslaT4, 4),
				gpu(NvidiaTeslaV100, 8),
				gpu(NvidiaTeslaP4, 4),
			},
		},
		{
			Name: "n1-standard-96", CPUCores: 96, RAMGiB: 360,
			SupportedAccelerators: []models.AcceleratorOption{
				gpu(NvidiaTeslaT4, 4),
				gpu(NvidiaTeslaV100, 8),
				gpu(NvidiaTeslaP4, 4),
			},
		},
		{Name: "n1-highmem-2", CPUCores: 2, RAMGiB: 13},
		{Name: "n1-highmem-4", CPUCores: 4, RAMGiB: 26},
		{Name: "n1-highmem-8", CPUCores: 8, RAMGiB: 52},
		{Name: "n1-highmem-16", CPUCores: 16, RAMGiB: 104},
		{Name: "n1-highmem-32", CPUCores: 32, RAMGiB: 208},
		{Name: "n1-highmem-64", CPUCores: 64, RAMGiB: 416},
		{Name: "n1-highmem-96", CPUCores: 96, RAMGiB: 624},
	}
}
