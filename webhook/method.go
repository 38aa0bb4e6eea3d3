package webhook

import (
	"fmt"
	"net/http"
	"strings"
)

/* Method represents the HTTP verb used to call a target
 * GET issues a plain request
 * POST sends an empty JSON body
 */
type Method int

const (
	GET Method = iota + 1
	POST
)

// String returns the HTTP representation of the method
func (m Method) String() string {
	switch m {
	case GET:
		return http.MethodGet
	case POST:
		return http.MethodPost
	default:
		return "UNKNOWN"
	}
}

// NewMethod creates a Method from a string, case-insensitively
func NewMethod(s string) Method {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case http.MethodPost:
		return POST
	default:
		return GET // anything that is not POST is called with GET
	}
}

// ParseMethod is the strict variant of NewMethod used when validating configuration files
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", http.MethodGet:
		return GET, nil
	case http.MethodPost:
		return POST, nil
	default:
		return 0, fmt.Errorf("unsupported method: %q (expected GET or POST)", s)
	}
}

// Validate checks if the method is valid
func (m Method) Validate() error {
	if m != GET && m != POST {
		return fmt.Errorf("invalid method: %d", m)
	}
	return nil
}
