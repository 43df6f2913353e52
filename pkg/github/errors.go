package github

import "fmt"

// APIError represents a structured failure reported by the GitHub API. It is
// the JSON error object returned on the request body, as opposed to transport
// or parse failures which surface as plain wrapped errors.
type APIError struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.DocumentationURL != "" {
		return fmt.Sprintf("GitHub error: %s (%s)", e.Message, e.DocumentationURL)
	}
	return fmt.Sprintf("GitHub error: %s", e.Message)
}
