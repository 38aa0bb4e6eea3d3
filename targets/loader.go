package targets

import (
	"fmt"
	"os"

	"github.com/marcelsud/webhook-scheduler/webhook"
	"gopkg.in/yaml.v3"
)

/* Loader resolves the primary and secondary targets
 * Starts from the environment configuration; a targets.yaml section replaces the matching target
 */

// Config represents the structure of targets.yaml
type Config struct {
	Primary   *TargetConfig `yaml:"primary"`
	Secondary *TargetConfig `yaml:"secondary"`
}

// TargetConfig represents a single target in the YAML file
type TargetConfig struct {
	URL            string `yaml:"url"`
	Method         string `yaml:"method"`          // GET or POST, default GET
	TimeoutSeconds int    `yaml:"timeout_seconds"` // default 30
	SigningSecret  string `yaml:"signing_secret"`  // optional, whsec_ prefix
}

// Loader holds the resolved targets
type Loader struct {
	primary   webhook.Target
	secondary webhook.Target
}

// NewLoader creates a loader seeded with the given targets
func NewLoader(primary, secondary webhook.Target) *Loader {
	return &Loader{
		primary:   primary,
		secondary: secondary,
	}
}

// Load reads and validates the targets file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading targets file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing targets YAML: %w", err)
	}

	primary, secondary := l.primary, l.secondary
	if config.Primary != nil {
		if primary, err = config.Primary.toTarget(webhook.PrimaryTarget); err != nil {
			return err
		}
	}
	if config.Secondary != nil {
		if secondary, err = config.Secondary.toTarget(webhook.SecondaryTarget); err != nil {
			return err
		}
	}

	l.primary, l.secondary = primary, secondary
	return nil
}

func (tc TargetConfig) toTarget(name string) (webhook.Target, error) {
	if _, err := webhook.ParseMethod(tc.Method); err != nil {
		return webhook.Target{}, fmt.Errorf("validating target %s: %w", name, err)
	}
	if tc.TimeoutSeconds < 0 {
		return webhook.Target{}, fmt.Errorf("validating target %s: timeout_seconds cannot be negative", name)
	}

	target := webhook.NewTarget(name, tc.URL, tc.Method, tc.TimeoutSeconds, tc.SigningSecret)
	if err := target.Validate(); err != nil {
		return webhook.Target{}, fmt.Errorf("validating target: %w", err)
	}
	return target, nil
}

// Primary returns the primary target
func (l *Loader) Primary() webhook.Target {
	return l.primary
}

// Secondary returns the secondary target
func (l *Loader) Secondary() webhook.Target {
	return l.secondary
}

// List returns both targets, primary first
func (l *Loader) List() []webhook.Target {
	return []webhook.Target{l.primary, l.secondary}
}
