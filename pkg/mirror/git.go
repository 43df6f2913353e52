package mirror

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// GitClient defines the interface for the version-control operations the
// reconciler needs.
type GitClient interface {
	// Clone creates a bare mirror clone of url at path and installs the
	// push-rejection hook into it.
	Clone(ctx context.Context, path, url string) error

	// Update fetches the mirror's stored upstream, pruning refs that no
	// longer exist remotely.
	Update(ctx context.Context, path string) error
}

// Git implements GitClient by shelling out to the git binary. Subprocess
// output is passed through to the configured writers so clone and fetch
// progress reaches the user directly.
type Git struct {
	remote string
	stdout io.Writer
	stderr io.Writer
}

var _ GitClient = (*Git)(nil)

// NewGit creates a git driver that names each mirror's upstream remote.
func NewGit(remote string) *Git {
	return &Git{
		remote: remote,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Clone implements GitClient.
func (g *Git) Clone(ctx context.Context, path, url string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--mirror", "--origin", g.remote, url, path)
	cmd.Stdout = g.stdout
	cmd.Stderr = g.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to git clone %s: %w", url, err)
	}

	// The hook is the safety control keeping the mirror read-only; failing
	// to install it fails the clone.
	if err := installPreReceiveHook(path); err != nil {
		return fmt.Errorf("failed to protect mirror %s: %w", path, err)
	}

	return nil
}

// Update implements GitClient.
func (g *Git) Update(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", path, "remote", "update", "--prune")
	cmd.Stdout = g.stdout
	cmd.Stderr = g.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to git remote update %s: %w", path, err)
	}

	return nil
}
