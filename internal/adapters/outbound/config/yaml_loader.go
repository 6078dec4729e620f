package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/schemaguard/schemaguard/internal/domain"
)

const fileName = ".schemaguard.yaml"

// YAMLLoader implements domain.PolicyLoader by reading .schemaguard.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .schemaguard.yaml from projectPath. A missing file yields the
// default policy.
func (l *YAMLLoader) Load(projectPath string) (domain.Policy, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultPolicy(), nil
		}
		return domain.Policy{}, err
	}

	var p domain.Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return domain.Policy{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := p.Validate(); err != nil {
		return domain.Policy{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	// Fill defaults the file left out.
	if len(p.RequiredColumns) == 0 {
		p.RequiredColumns = domain.DefaultRequiredColumns
	}

	return p, nil
}
