package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagrangedao/go-machine-matcher/common"
	"github.com/lagrangedao/go-machine-matcher/internal/matcher"
	"github.com/lagrangedao/go-machine-matcher/internal/models"
)

func testSettings() Settings {
	return Settings{
		Project:         "demo-project",
		Location:        "us-central1",
		BucketName:      "demo-bucket",
		ServiceAccount:  "deployer@demo-project.iam.gserviceaccount.com",
		ServingImageUri: "gcr.io/demo-project/serving:1",
		ContainerPort:   8000,
		AppPort:         8080,
		ApplicationName: "demo-app",
		ProjectName:     "demo-git",
	}
}

func testRequest() Request {
	return Request{
		ModelName: "churn",
		Version:   "v3",
		GitBranch: "main",
		Resources: models.ResourceRequest{
			CPUCores: 6, RAMGiB: 20, AcceleratorType: common.NvidiaTeslaT4, AcceleratorCount: 8,
		},
	}
}

func newTestOrchestrator(t *testing.T, plane ControlPlane, settings Settings) *Orchestrator {
	t.Helper()
	m, err := matcher.New(common.DefaultMachineTypes())
	require.NoError(t, err)
	return NewOrchestrator(m, plane, settings)
}

func TestPlan(t *testing.T) {
	o := newTestOrchestrator(t, NewDryRunControlPlane(), testSettings())

	plan, warnings, err := o.Plan(testRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, plan.Id)
	assert.Equal(t, "gs://demo-bucket", plan.StagingBucket)
	assert.Equal(t, "gs://demo-bucket/models/churn/metadata/v3/", plan.ArtifactUri)
	assert.Equal(t, "projects/demo-project/locations/us-central1/models/churn", plan.ParentModel)
	assert.Equal(t, "churn", plan.EndpointName)
	assert.Equal(t, []int{8000}, plan.ServingContainerPorts)
	assert.Equal(t, []string{"--app_port=8080"}, plan.ServingContainerArgs)
	assert.Equal(t, map[string]string{
		"application_name": "demo-app",
		"git_project":      "demo-git",
		"model_name":       "churn",
		"git_branch":       "main",
		"version":          "v3",
	}, plan.Labels)

	assert.Equal(t, "n1-standard-8", plan.MachineType)
	assert.Equal(t, common.NvidiaTeslaT4, plan.AcceleratorType)
	assert.Equal(t, 4, plan.AcceleratorCount)
	assert.Equal(t, 1, plan.MinReplicaCount)
	assert.Equal(t, 1, plan.MaxReplicaCount)

	require.Len(t, warnings, 1)
	assert.Equal(t, models.InsufficientAcceleratorCount, warnings[0].Kind)
}

func TestPlanValidation(t *testing.T) {
	missingBucket := testSettings()
	missingBucket.BucketName = ""

	noVersion := testRequest()
	noVersion.Version = ""

	badAccelerator := testRequest()
	badAccelerator.Resources.AcceleratorCount = 0

	tests := []struct {
		name     string
		settings Settings
		req      Request
	}{
		{name: "settings", settings: missingBucket, req: testRequest()},
		{name: "request", settings: testSettings(), req: noVersion},
		{name: "selection", settings: testSettings(), req: badAccelerator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrchestrator(t, NewDryRunControlPlane(), tt.settings)
			plan, _, err := o.Plan(tt.req)
			assert.Error(t, err)
			assert.Nil(t, plan)
		})
	}
}

func TestPlanKeepsSelectionErrorType(t *testing.T) {
	o := newTestOrchestrator(t, NewDryRunControlPlane(), testSettings())
	req := testRequest()
	req.Resources = models.ResourceRequest{CPUCores: 64, RAMGiB: 200, AcceleratorType: common.NvidiaTeslaK80, AcceleratorCount: 1}

	_, _, err := o.Plan(req)
	var unsupported *matcher.UnsupportedAcceleratorError
	assert.True(t, errors.As(err, &unsupported))
}

func TestExecute(t *testing.T) {
	plane := NewDryRunControlPlane()
	o := newTestOrchestrator(t, plane, testSettings())

	plan, _, err := o.Plan(testRequest())
	require.NoError(t, err)

	result, err := o.Execute(context.Background(), plan)
	require.NoError(t, err)
	assert.False(t, result.NewVersion)
	assert.Equal(t, plan.Id, result.PlanId)
	assert.Equal(t, "projects/demo-project/locations/us-central1/models/churn@v3", result.ModelName)
	assert.Contains(t, result.EndpointName, "projects/demo-project/locations/us-central1/endpoints/")
	assert.Equal(t, []string{"ModelExists", "UploadModel", "CreateEndpoint", "DeployModel"}, plane.Calls())

	result, err = o.Execute(context.Background(), plan)
	require.NoError(t, err)
	assert.True(t, result.NewVersion)
}

func TestExecuteExistingModel(t *testing.T) {
	o := newTestOrchestrator(t, NewDryRunControlPlane("churn"), testSettings())

	plan, _, err := o.Plan(testRequest())
	require.NoError(t, err)
	result, err := o.Execute(context.Background(), plan)
	require.NoError(t, err)
	assert.True(t, result.NewVersion)
}

type failingPlane struct {
	*DryRunControlPlane
	err error
}

func (p *failingPlane) CreateEndpoint(ctx context.Context, plan *Plan) (string, error) {
	return "", p.err
}

func TestExecuteStopsOnFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	plane := &failingPlane{DryRunControlPlane: NewDryRunControlPlane(), err: boom}
	o := newTestOrchestrator(t, plane, testSettings())

	plan, _, err := o.Plan(testRequest())
	require.NoError(t, err)

	result, err := o.Execute(context.Background(), plan)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "create endpoint churn")
	assert.Equal(t, []string{"ModelExists", "UploadModel"}, plane.Calls())
}

func TestExecuteCancelled(t *testing.T) {
	plane := NewDryRunControlPlane()
	o := newTestOrchestrator(t, plane, testSettings())

	plan, _, err := o.Plan(testRequest())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = o.Execute(ctx, plan)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, plane.Calls())
}
