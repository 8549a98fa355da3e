package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// ProjectConfigPath is the repository-relative location of per-repo settings.
const ProjectConfigPath = ".doxai.yaml"

// ProjectConfig represents a repository-level .doxai.yaml file. It only
// widens or narrows the documentable file table and picks defaults; it never
// changes where docs are written.
type ProjectConfig struct {
	Extensions []string `yaml:"extensions"`
	Exclude    []string `yaml:"exclude"`
	Language   string   `yaml:"language"`
	MinVersion string   `yaml:"min_version"`
}

// ParseProjectConfig parses .doxai.yaml content. Empty content yields nil.
func ParseProjectConfig(data []byte) (*ProjectConfig, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}

	var pc ProjectConfig
	if err := yaml.Unmarshal(data, &pc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ProjectConfigPath, err)
	}

	for i, ext := range pc.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			return nil, fmt.Errorf("%s: extension at index %d is empty", ProjectConfigPath, i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		pc.Extensions[i] = ext
	}
	if pc.Language != "" && pc.Language != "ko" && pc.Language != "en" {
		return nil, fmt.Errorf("%s: language must be ko or en, got %q", ProjectConfigPath, pc.Language)
	}
	if pc.MinVersion != "" {
		if _, err := minConstraint(pc.MinVersion); err != nil {
			return nil, fmt.Errorf("%s: invalid min_version %q: %w", ProjectConfigPath, pc.MinVersion, err)
		}
	}

	return &pc, nil
}

// CheckVersion reports whether the running bot satisfies min_version.
// Development builds (unparseable versions) always pass.
func (pc *ProjectConfig) CheckVersion(running string) error {
	if pc == nil || pc.MinVersion == "" {
		return nil
	}

	v, err := semver.NewVersion(strings.TrimPrefix(running, "v"))
	if err != nil {
		return nil
	}

	constraint, err := minConstraint(pc.MinVersion)
	if err != nil {
		return fmt.Errorf("invalid min_version %q: %w", pc.MinVersion, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("doxai %s does not satisfy %s min_version %q", running, ProjectConfigPath, pc.MinVersion)
	}
	return nil
}

// minConstraint treats a bare version as a lower bound and anything else as
// a full semver constraint expression.
func minConstraint(s string) (*semver.Constraints, error) {
	if _, err := semver.NewVersion(s); err == nil {
		return semver.NewConstraint(">= " + s)
	}
	return semver.NewConstraint(s)
}
