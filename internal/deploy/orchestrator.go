package deploy

import (
	"context"
	"fmt"

	"github.com/filswan/go-swan-lib/logs"

	"github.com/lagrangedao/go-machine-matcher/internal/models"
)

type MachineSelector interface {
	SelectMachine(req models.ResourceRequest) (models.Selection, []models.Warning, error)
}

// ControlPlane is the cloud side of a deployment. Implementations talk to the
// provider; the orchestrator only sequences the calls.
type ControlPlane interface {
	ModelExists(ctx context.Context, plan *Plan) (bool, error)
	// UploadModel returns the model resource name. asVersion uploads the
	// artifact as a new version of plan.ParentModel.
	UploadModel(ctx context.Context, plan *Plan, asVersion bool) (string, error)
	CreateEndpoint(ctx context.Context, plan *Plan) (string, error)
	DeployModel(ctx context.Context, plan *Plan, modelName, endpointName string) error
}

type Result struct {
	PlanId       string `json:"plan_id"`
	ModelName    string `json:"model_name"`
	EndpointName string `json:"endpoint_name"`
	NewVersion   bool   `json:"new_version"`
}

type Orchestrator struct {
	selector MachineSelector
	plane    ControlPlane
	settings Settings
}

func NewOrchestrator(selector MachineSelector, plane ControlPlane, settings Settings) *Orchestrator {
	return &Orchestrator{
		selector: selector,
		plane:    plane,
		settings: settings,
	}
}

// Plan selects a machine for req and derives the deployment arguments.
// Selection warnings are passed through untouched.
func (o *Orchestrator) Plan(req Request) (*Plan, []models.Warning, error) {
	if err := o.settings.validate(); err != nil {
		return nil, nil, err
	}
	if err := req.validate(); err != nil {
		return nil, nil, err
	}

	selection, warnings, err := o.selector.SelectMachine(req.Resources)
	if err != nil {
		return nil, nil, fmt.Errorf("select machine: %w", err)
	}
	return newPlan(o.settings, req, selection), warnings, nil
}

// Execute uploads the model (as a new version when the model already exists),
// creates the endpoint and deploys the model on it.
func (o *Orchestrator) Execute(ctx context.Context, plan *Plan) (*Result, error) {
	exists, err := o.plane.ModelExists(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("check model %s: %w", plan.ModelName, err)
	}

	modelName, err := o.plane.UploadModel(ctx, plan, exists)
	if err != nil {
		return nil, fmt.Errorf("upload model %s: %w", plan.ModelName, err)
	}
	logs.GetLogger().Infof("plan %s: uploaded model %s, new version: %t", plan.Id, modelName, exists)

	endpointName, err := o.plane.CreateEndpoint(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("create endpoint %s: %w", plan.EndpointName, err)
	}
	logs.GetLogger().Infof("plan %s: created endpoint %s", plan.Id, endpointName)

	if err := o.plane.DeployModel(ctx, plan, modelName, endpointName); err != nil {
		return nil, fmt.Errorf("deploy model %s to %s: %w", modelName, endpointName, err)
	}
	logs.GetLogger().Infof("plan %s: deployed %s on %s (accelerator: %s x%d)",
		plan.Id, modelName, plan.MachineType, plan.AcceleratorType, plan.AcceleratorCount)

	return &Result{
		PlanId:       plan.Id,
		ModelName:    modelName,
		EndpointName: endpointName,
		NewVersion:   exists,
	}, nil
}
