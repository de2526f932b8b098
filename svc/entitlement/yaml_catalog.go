package entitlement

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a plan file:
//
//	plans:
//	  starter:
//	    name: Starter
//	    limits:
//	      max_users: 3
//	      max_ingredients: 50
//	    features:
//	      basicReports: true
//	  legacy-pro:
//	    name: Pro (legacy)
//	    features:
//	      - "Advanced report and analytics"
type catalogFile struct {
	Plans map[string]Plan `yaml:"plans"`
}

// LoadYAMLCatalog reads a static plan file into a MemCatalog. Intended for
// self-hosted and free-tier deployments where the plan set is fixed and
// versioned with the application instead of living in the database.
func LoadYAMLCatalog(path string) (*MemCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidCatalogFile, err)
	}
	return ParseYAMLCatalog(raw)
}

// ParseYAMLCatalog builds a MemCatalog from raw YAML bytes.
func ParseYAMLCatalog(raw []byte) (*MemCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrInvalidCatalogFile, err)
	}

	catalog := NewMemCatalog()
	for id, plan := range file.Plans {
		plan.ID = id
		catalog.Put(plan)
	}
	return catalog, nil
}
