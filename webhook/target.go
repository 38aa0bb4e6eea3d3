package webhook

import (
	"fmt"
	"time"

	"github.com/marcelsud/webhook-scheduler/webhook/signature"
)

const (
	// DefaultTimeout is applied when a target does not set its own
	DefaultTimeout = 30 * time.Second

	PrimaryTarget   = "primary"
	SecondaryTarget = "secondary"
)

/* Target identifies one webhook to call
 * An empty URL is a valid configuration: invoking it records a configuration error
 */
type Target struct {
	Name          string
	URL           string
	Method        Method
	Timeout       time.Duration
	SigningSecret string // Standard Webhooks signing secret (whsec_ prefix), optional
}

// NewTarget builds a target applying the defaults for method and timeout
func NewTarget(name, url, method string, timeoutSeconds int, signingSecret string) Target {
	timeout := DefaultTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return Target{
		Name:          name,
		URL:           url,
		Method:        NewMethod(method),
		Timeout:       timeout,
		SigningSecret: signingSecret,
	}
}

// Configured reports whether the target has a URL to call
func (t Target) Configured() bool {
	return t.URL != ""
}

// Validate checks if the target configuration is valid
func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("target name cannot be empty")
	}
	if err := t.Method.Validate(); err != nil {
		return fmt.Errorf("invalid method for target %s: %w", t.Name, err)
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive for target %s", t.Name)
	}
	if t.SigningSecret != "" {
		if _, err := signature.ParseSecret(t.SigningSecret); err != nil {
			return fmt.Errorf("invalid signing_secret for target %s: %w", t.Name, err)
		}
	}
	return nil
}
