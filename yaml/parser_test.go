package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagrangedao/go-machine-matcher/internal/models"
)

const sampleCatalog = `
version: "1.0"
machines:
  - name: n1-standard-8
    cpu: 8
    memory: 30Gi
    accelerators:
      - type: NVIDIA_TESLA_T4
        counts: [1, 2, 4]
  - name: n1-highmem-2
    cpu: 2
    memory: "13"
`

func TestParseCatalog(t *testing.T) {
	entries, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, []models.CatalogEntry{
		{
			Name: "n1-standard-8", CPUCores: 8, RAMGiB: 30,
			SupportedAccelerators: []models.AcceleratorOption{
				{Type: "NVIDIA_TESLA_T4", SupportedCounts: []int{1, 2, 4}},
			},
		},
		{Name: "n1-highmem-2", CPUCores: 2, RAMGiB: 13},
	}, entries)
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown version", doc: "version: \"9\"\nmachines: []\n"},
		{name: "no machines", doc: "version: \"1.0\"\nmachines: []\n"},
		{name: "missing memory", doc: "machines:\n  - name: a\n    cpu: 1\n"},
		{name: "fractional GiB", doc: "machines:\n  - name: a\n    cpu: 1\n    memory: 1500Mi\n"},
		{name: "garbage memory", doc: "machines:\n  - name: a\n    cpu: 1\n    memory: lots\n"},
		{name: "not yaml", doc: "machines: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseMemoryGiB(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "15", want: 15},
		{in: "15Gi", want: 15},
		{in: "1Ti", want: 1024},
		{in: "2048Mi", want: 2},
	}
	for _, tt := range tests {
		got, err := parseMemoryGiB(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestHandlerCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))

	entries, err := HandlerCatalog(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = HandlerCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
