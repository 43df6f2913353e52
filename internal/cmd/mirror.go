package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ghmirror/pkg/config"
	"ghmirror/pkg/github"
	"ghmirror/pkg/mirror"
)

var (
	mirrorAuthenticated bool
	mirrorDryRun        bool
	mirrorRoot          string
	mirrorBackend       string
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror [<account>]",
	Short: "Clone or update bare mirrors of every repository owned by an account",
	Long: `Mirror every repository owned by a GitHub account into the root directory.

For each remote repository, a directory named after it is looked up under the
root: if it exists it is refreshed with 'git remote update --prune', otherwise
a fresh 'git clone --mirror' is made and a push-rejecting pre-receive hook is
installed. Repositories are processed one at a time, in listing order, and the
run stops at the first failure; re-running picks up where it left off.

Pass an account name, or --authenticated to mirror the account that owns the
ambient credentials. Exactly one of the two is required.

Examples:
  # Mirror all of alice's repositories into the current directory
  ghmirror mirror alice

  # Mirror your own repositories, including private ones
  ghmirror mirror --authenticated

  # Preview what a run would do
  ghmirror mirror alice --dry-run

  # Mirror into a dedicated root using the REST API backend
  ghmirror mirror alice --root /srv/mirrors --backend api`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMirror,
}

func init() {
	mirrorCmd.Flags().BoolVar(&mirrorAuthenticated, "authenticated", false, "Mirror the repositories of the account that owns the ambient credentials")
	mirrorCmd.Flags().BoolVar(&mirrorDryRun, "dry-run", false, "Classify and log intended actions without cloning or updating anything")
	mirrorCmd.Flags().StringVar(&mirrorRoot, "root", "", "Directory to place mirrors in (default: mirror.root from config, else the current directory)")
	mirrorCmd.Flags().StringVar(&mirrorBackend, "backend", "", "Listing backend: 'gh' shells out to the gh CLI, 'api' uses the REST API (default: mirror.backend from config, else 'gh')")
}

func runMirror(_ *cobra.Command, args []string) error {
	account, err := resolveAccount(args, mirrorAuthenticated)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load ghmirror config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid ghmirror config: %w", err)
	}

	root := mirrorRoot
	if root == "" {
		root = cfg.Mirror.Root
	}
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	lister, err := newLister(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	repos, err := lister.List(ctx, account)
	if err != nil {
		return err
	}

	git := mirror.NewGit(cfg.Remote())
	reconciler := mirror.NewReconciler(git, os.Stdout, os.Stderr)

	if err := reconciler.Reconcile(ctx, repos, root, mirrorDryRun); err != nil {
		return err
	}

	if mirrorDryRun {
		fmt.Printf("✓ Dry-run completed for %d repositories. No changes were made.\n", len(repos))
	}

	return nil
}

// resolveAccount enforces that exactly one of the positional account name and
// --authenticated is given.
func resolveAccount(args []string, authenticated bool) (github.Account, error) {
	if len(args) == 1 && authenticated {
		return github.Account{}, fmt.Errorf("an account name and --authenticated are mutually exclusive")
	}
	if len(args) == 0 && !authenticated {
		return github.Account{}, fmt.Errorf("an account name or --authenticated is required")
	}

	if authenticated {
		return github.Account{Authenticated: true}, nil
	}
	return github.Account{Name: args[0]}, nil
}

// newLister builds the listing backend selected by flag or config.
func newLister(cfg *config.Config) (github.Lister, error) {
	backend := mirrorBackend
	if backend == "" {
		backend = cfg.Backend()
	}

	switch backend {
	case config.BackendGH:
		return github.NewCLILister(), nil
	case config.BackendAPI:
		token, err := github.NewAuthManager().GetToken(cfg)
		if err != nil {
			return nil, err
		}
		return github.NewAPILister(token), nil
	default:
		return nil, fmt.Errorf("unknown listing backend %q: must be %q or %q", backend, config.BackendGH, config.BackendAPI)
	}
}
