package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// runGHFunc invokes the gh binary with the given arguments and returns its
// captured stdout. The returned error is an *exec.ExitError when gh itself
// ran but exited non-zero.
type runGHFunc func(ctx context.Context, args ...string) ([]byte, error)

// CLILister lists repositories by shelling out to the gh CLI, which handles
// authentication and pagination itself. gh emits one JSON array per result
// page, concatenated on stdout.
type CLILister struct {
	run runGHFunc
}

// NewCLILister creates a lister backed by the gh binary found on PATH.
func NewCLILister() *CLILister {
	return &CLILister{run: runGH}
}

func runGH(ctx context.Context, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, "gh", args...).Output()
}

// List implements Lister.
func (l *CLILister) List(ctx context.Context, account Account) ([]Repository, error) {
	endpoint := "user/repos"
	if !account.Authenticated {
		endpoint = "users/" + account.Name + "/repos"
	}

	out, err := l.run(ctx, "api", "--paginate", endpoint)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run gh api: %w", err)
		}
		// gh exited non-zero: stdout should hold one GitHub error object.
		// If it doesn't, surface the decode failure rather than a made-up
		// message so diagnostics are never weaker on the error path.
		var apiErr APIError
		if jsonErr := json.Unmarshal(out, &apiErr); jsonErr != nil {
			return nil, fmt.Errorf("failed to decode gh error response: %w", jsonErr)
		}
		return nil, fmt.Errorf("failed to list repositories for %s: %w", account, &apiErr)
	}

	repos, err := decodePages(out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode repository listing for %s: %w", account, err)
	}
	return repos, nil
}

// decodePages decodes a concatenation of JSON arrays, one per result page,
// flattening them in page order then item order within each page.
func decodePages(stream []byte) ([]Repository, error) {
	dec := json.NewDecoder(bytes.NewReader(stream))

	var repos []Repository
	for {
		var page []Repository
		if err := dec.Decode(&page); err == io.EOF {
			return repos, nil
		} else if err != nil {
			return nil, err
		}
		repos = append(repos, page...)
	}
}
