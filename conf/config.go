package conf

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	DefaultContainerPort = 8000
	DefaultAppPort       = 8080
)

var config *MatcherNode

// MatcherNode is a machine-matcher node config
type MatcherNode struct {
	API     API
	CATALOG CATALOG
	DEPLOY  DEPLOY
}

type API struct {
	Port    int
	Domain  string
	CrtFile string
	KeyFile string
}

type CATALOG struct {
	Path string
}

type DEPLOY struct {
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

func InitConfig(repoPath string) error {
	configFile := filepath.Join(repoPath, "config.toml")

	var c MatcherNode
	metaData, err := toml.DecodeFile(configFile, &c)
	if err != nil {
		return fmt.Errorf("failed load config file, path: %s, error: %w", configFile, err)
	}
	if err := requiredFieldsAreGiven(metaData); err != nil {
		return fmt.Errorf("config file %s: %w", configFile, err)
	}

	if c.DEPLOY.ContainerPort == 0 {
		c.DEPLOY.ContainerPort = DefaultContainerPort
	}
	if c.DEPLOY.AppPort == 0 {
		c.DEPLOY.AppPort = DefaultAppPort
	}
	if c.CATALOG.Path != "" && !filepath.IsAbs(c.CATALOG.Path) {
		c.CATALOG.Path = filepath.Join(repoPath, c.CATALOG.Path)
	}

	config = &c
	return nil
}

func GetConfig() *MatcherNode {
	return config
}

func requiredFieldsAreGiven(metaData toml.MetaData) error {
	requiredFields := [][]string{
		{"API"},

		{"API", "Port"},
	}

	for _, v := range requiredFields {
		if !metaData.IsDefined(v...) {
			return fmt.Errorf("required field %v is not given", v)
		}
	}

	return nil
}
