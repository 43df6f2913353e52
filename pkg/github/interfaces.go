package github

import "context"

// Lister defines the interface for repository listing operations
type Lister interface {
	// List returns every repository owned by the account, in the order the
	// remote service reports them. On failure no partial results are returned.
	List(ctx context.Context, account Account) ([]Repository, error)
}
