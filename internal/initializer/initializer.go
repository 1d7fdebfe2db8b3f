package initializer

import (
	"fmt"

	"github.com/filswan/go-swan-lib/logs"

	"github.com/lagrangedao/go-machine-matcher/common"
	"github.com/lagrangedao/go-machine-matcher/conf"
	"github.com/lagrangedao/go-machine-matcher/internal/matcher"
	"github.com/lagrangedao/go-machine-matcher/internal/models"
	"github.com/lagrangedao/go-machine-matcher/yaml"
)

// LoadCatalog reads a YAML catalog, or returns the built-in one when path is empty.
func LoadCatalog(path string) ([]models.CatalogEntry, error) {
	if path == "" {
		logs.GetLogger().Info("no catalog file configured, using the built-in machine types")
		return common.DefaultMachineTypes(), nil
	}

	entries, err := yaml.HandlerCatalog(path)
	if err != nil {
		return nil, err
	}
	logs.GetLogger().Infof("loaded %d machine types from %s", len(entries), path)
	return entries, nil
}

func NewMatcher(catalogPath string) (*matcher.Matcher, error) {
	entries, err := LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	m, err := matcher.New(entries)
	if err != nil {
		return nil, fmt.Errorf("build matcher: %w", err)
	}
	return m, nil
}

// ProjectInit loads config.toml from repoPath and builds the matcher from the
// configured catalog.
func ProjectInit(repoPath string) (*matcher.Matcher, error) {
	if err := conf.InitConfig(repoPath); err != nil {
		return nil, err
	}
	return NewMatcher(conf.GetConfig().CATALOG.Path)
}
