package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lagrangedao/go-machine-matcher/internal/models"
)

func TestFormatAccelerators(t *testing.T) {
	assert.Equal(t, "-", formatAccelerators(nil))
	assert.Equal(t, "T4{1,2,4} V100{8}", formatAccelerators([]models.AcceleratorOption{
		{Type: "T4", SupportedCounts: []int{1, 2, 4}},
		{Type: "V100", SupportedCounts: []int{8}},
	}))
}

func TestVisualTableGenerate(t *testing.T) {
	var buf bytes.Buffer
	NewVisualTable([]string{"NAME", "CPU"}, [][]string{{"n1-standard-4", "4"}}, nil).Generate(&buf)
	assert.Contains(t, buf.String(), "n1-standard-4")
	assert.Contains(t, buf.String(), "NAME")
}
