package mirror

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ghmirror/pkg/github"
)

// Reconciler decides, per repository, whether the local mirror must be
// created or refreshed, and drives the git client accordingly. Repositories
// are processed strictly in the order given; the first failure aborts the
// remaining queue. Re-running after a failure is safe: already-mirrored
// repositories are updated, not re-cloned.
type Reconciler struct {
	git  GitClient
	out  io.Writer // status lines (cloning/updating)
	diag io.Writer // dry-run descriptor dump
}

// NewReconciler creates a reconciler writing status lines to out and the
// dry-run descriptor stream to diag.
func NewReconciler(git GitClient, out, diag io.Writer) *Reconciler {
	return &Reconciler{git: git, out: out, diag: diag}
}

// Reconcile mirrors every repository into root. With dryRun set it only
// classifies and logs: no subprocess is started and no directory is created,
// and each descriptor is additionally written to the diagnostic writer.
func (r *Reconciler) Reconcile(ctx context.Context, repos []github.Repository, root string, dryRun bool) error {
	for _, repo := range repos {
		if err := validateName(repo.Name); err != nil {
			return fmt.Errorf("refusing to mirror repository: %w", err)
		}

		if dryRun {
			fmt.Fprintf(r.diag, "%s -> %s\n", repo.Name, repo.SSHURL)
		}

		path := filepath.Join(root, repo.Name)

		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			fmt.Fprintf(r.out, "updating %s\n", repo.Name)
			if dryRun {
				continue
			}
			if err := r.git.Update(ctx, path); err != nil {
				return err
			}

		case err == nil:
			return fmt.Errorf("mirror path %s exists and is not a directory", path)

		case os.IsNotExist(err):
			fmt.Fprintf(r.out, "cloning %s\n", repo.Name)
			if dryRun {
				continue
			}
			if err := r.git.Clone(ctx, path, repo.SSHURL); err != nil {
				return err
			}

		default:
			return fmt.Errorf("failed to inspect mirror path %s: %w", path, err)
		}
	}

	return nil
}

// validateName rejects repository names that cannot safely serve as a local
// directory name under the mirror root.
func validateName(name string) error {
	switch name {
	case "", ".", "..":
		return fmt.Errorf("repository name %q is not a valid directory name", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("repository name %q contains a path separator", name)
	}
	return nil
}
