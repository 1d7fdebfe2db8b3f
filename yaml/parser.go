package yaml

import (
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"

	"github.com/lagrangedao/go-machine-matcher/internal/models"
)

type Parser interface {
	Parse(yamlFile []byte) error
	Machines() ([]models.CatalogEntry, error)
}

type ParserCatalogV1 struct {
	config CatalogYamlV1
}

func (p *ParserCatalogV1) Parse(yamlFile []byte) error {
	var catalog CatalogYamlV1
	if err := yaml.Unmarshal(yamlFile, &catalog); err != nil {
		return err
	}
	p.config = catalog
	return nil
}

func (p *ParserCatalogV1) Machines() ([]models.CatalogEntry, error) {
	return p.config.ToCatalogEntries()
}

type Version struct {
	Version string `yaml:"version"`
}

func getYAMLFileVersion(yamlFile []byte) (string, error) {
	var version Version
	err := yaml.Unmarshal(yamlFile, &version)
	if err != nil {
		return "", err
	}
	return version.Version, nil
}

func newParser(version string) (Parser, error) {
	switch version {
	case "", "1", "1.0":
		return &ParserCatalogV1{}, nil
	default:
		return nil, xerrors.Errorf("not support catalog version: %s", version)
	}
}

// ParseCatalog decodes a catalog document. A missing version is read as 1.0.
func ParseCatalog(yamlFile []byte) ([]models.CatalogEntry, error) {
	version, err := getYAMLFileVersion(yamlFile)
	if err != nil {
		return nil, xerrors.Errorf("failed unable to read catalog version: %w", err)
	}

	parser, err := newParser(version)
	if err != nil {
		return nil, err
	}
	if err = parser.Parse(yamlFile); err != nil {
		return nil, xerrors.Errorf("failed unable to parse catalog YAML: %w", err)
	}

	machines, err := parser.Machines()
	if err != nil {
		return nil, xerrors.Errorf("failed unable to convert catalog: %w", err)
	}
	return machines, nil
}

func HandlerCatalog(catalogFilePath string) ([]models.CatalogEntry, error) {
	yamlFile, err := os.ReadFile(catalogFilePath)
	if err != nil {
		return nil, xerrors.Errorf("failed unable to read file %s: %w", catalogFilePath, err)
	}
	return ParseCatalog(yamlFile)
}
