package deploy

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lagrangedao/go-machine-matcher/internal/models"
)

const (
	defaultReplicaCount      = 1
	defaultTrafficPercentage = 0
)

// Settings are the per-project deployment parameters shared by every plan.
type Settings struct {
	Project         string
	Location        string
	BucketName      string
	ServiceAccount  string
	ServingImageUri string
	ContainerPort   int
	AppPort         int
	ApplicationName string
	ProjectName     string
}

type Request struct {
	ModelName    string                 `json:"model_name"`
	Version      string                 `json:"version"`
	GitBranch    string                 `json:"git_branch"`
	EndpointName string                 `json:"endpoint_name,omitempty"`
	Resources    models.ResourceRequest `json:"resources"`
}

// Plan is everything the control plane needs to upload, expose and deploy one
// model version. It is built once by Orchestrator.Plan and never changed.
type Plan struct {
	Id                    string            `json:"id"`
	Project               string            `json:"project"`
	Location              string            `json:"location"`
	ModelName             string            `json:"model_name"`
	Version               string            `json:"version"`
	GitBranch             string            `json:"git_branch"`
	EndpointName          string            `json:"endpoint_name"`
	ServiceAccount        string            `json:"service_account,omitempty"`
	StagingBucket         string            `json:"staging_bucket"`
	ArtifactUri           string            `json:"artifact_uri"`
	ParentModel           string            `json:"parent_model"`
	ServingImageUri       string            `json:"serving_image_uri"`
	ServingContainerPorts []int             `json:"serving_container_ports"`
	ServingContainerArgs  []string          `json:"serving_container_args"`
	Labels                map[string]string `json:"labels"`
	MachineType           string            `json:"machine_type"`
	AcceleratorType       string            `json:"accelerator_type,omitempty"`
	AcceleratorCount      int               `json:"accelerator_count,omitempty"`
	MinReplicaCount       int               `json:"min_replica_count"`
	MaxReplicaCount       int               `json:"max_replica_count"`
	TrafficPercentage     int               `json:"traffic_percentage"`
	Selection             models.Selection  `json:"selection"`
}

func (s Settings) validate() error {
	var missing []string
	if s.Project == "" {
		missing = append(missing, "project")
	}
	if s.Location == "" {
		missing = append(missing, "location")
	}
	if s.BucketName == "" {
		missing = append(missing, "bucket name")
	}
	if s.ServingImageUri == "" {
		missing = append(missing, "serving image uri")
	}
	if len(missing) > 0 {
		return fmt.Errorf("deploy settings missing: %s", strings.Join(missing, ", "))
	}
	if s.ContainerPort <= 0 || s.AppPort <= 0 {
		return fmt.Errorf("deploy settings need positive ports, got container=%d app=%d", s.ContainerPort, s.AppPort)
	}
	return nil
}

func (r Request) validate() error {
	var missing []string
	if r.ModelName == "" {
		missing = append(missing, "model name")
	}
	if r.Version == "" {
		missing = append(missing, "version")
	}
	if r.GitBranch == "" {
		missing = append(missing, "git branch")
	}
	if len(missing) > 0 {
		return fmt.Errorf("deploy request missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

func newPlan(s Settings, r Request, selection models.Selection) *Plan {
	endpointName := r.EndpointName
	if endpointName == "" {
		endpointName = r.ModelName
	}

	return &Plan{
		Id:                    uuid.NewString(),
		Project:               s.Project,
		Location:              s.Location,
		ModelName:             r.ModelName,
		Version:               r.Version,
		GitBranch:             r.GitBranch,
		EndpointName:          endpointName,
		ServiceAccount:        s.ServiceAccount,
		StagingBucket:         fmt.Sprintf("gs://%s", s.BucketName),
		ArtifactUri:           fmt.Sprintf("gs://%s/models/%s/metadata/%s/", s.BucketName, r.ModelName, r.Version),
		ParentModel:           fmt.Sprintf("projects/%s/locations/%s/models/%s", s.Project, s.Location, r.ModelName),
		ServingImageUri:       s.ServingImageUri,
		ServingContainerPorts: []int{s.ContainerPort},
		ServingContainerArgs:  []string{fmt.Sprintf("--app_port=%d", s.AppPort)},
		Labels: map[string]string{
			"application_name": s.ApplicationName,
			"git_project":      s.ProjectName,
			"model_name":       r.ModelName,
			"git_branch":       r.GitBranch,
			"version":          r.Version,
		},
		MachineType:       selection.MachineName,
		AcceleratorType:   selection.AcceleratorType,
		AcceleratorCount:  selection.AcceleratorCount,
		MinReplicaCount:   defaultReplicaCount,
		MaxReplicaCount:   defaultReplicaCount,
		TrafficPercentage: defaultTrafficPercentage,
		Selection:         selection,
	}
}
