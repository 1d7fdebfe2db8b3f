package deploy

import (
	"context"
	"fmt"
	"sync"

	"github.com/filswan/go-swan-lib/logs"
	"github.com/google/uuid"
)

// DryRunControlPlane logs every call instead of reaching a cloud provider and
// hands out synthetic resource names.
type DryRunControlPlane struct {
	mu     sync.Mutex
	models map[string]bool
	calls  []string
}

func NewDryRunControlPlane(existingModels ...string) *DryRunControlPlane {
	known := make(map[string]bool, len(existingModels))
	for _, name := range existingModels {
		known[name] = true
	}
	return &DryRunControlPlane{models: known}
}

func (p *DryRunControlPlane) record(call string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call)
}

// Calls returns the calls made so far, in order.
func (p *DryRunControlPlane) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.calls))
	copy(out, p.calls)
	return out
}

func (p *DryRunControlPlane) ModelExists(ctx context.Context, plan *Plan) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p.record("ModelExists")

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.models[plan.ModelName], nil
}

func (p *DryRunControlPlane) UploadModel(ctx context.Context, plan *Plan, asVersion bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.record("UploadModel")
	logs.GetLogger().Infof("[dry-run] upload model %s version %s from %s, image: %s, parent: %t",
		plan.ModelName, plan.Version, plan.ArtifactUri, plan.ServingImageUri, asVersion)

	p.mu.Lock()
	p.models[plan.ModelName] = true
	p.mu.Unlock()
	return fmt.Sprintf("%s@%s", plan.ParentModel, plan.Version), nil
}

func (p *DryRunControlPlane) CreateEndpoint(ctx context.Context, plan *Plan) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.record("CreateEndpoint")
	name := fmt.Sprintf("projects/%s/locations/%s/endpoints/%s", plan.Project, plan.Location, uuid.NewString())
	logs.GetLogger().Infof("[dry-run] create endpoint %s as %s", plan.EndpointName, name)
	return name, nil
}

func (p *DryRunControlPlane) DeployModel(ctx context.Context, plan *Plan, modelName, endpointName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.record("DeployModel")
	logs.GetLogger().Infof("[dry-run] deploy %s to %s, machine: %s, accelerator: %s x%d, replicas: %d-%d, service account: %s",
		modelName, endpointName, plan.MachineType, plan.AcceleratorType, plan.AcceleratorCount,
		plan.MinReplicaCount, plan.MaxReplicaCount, plan.ServiceAccount)
	return nil
}
