package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ghmirror/pkg/config"
	"ghmirror/pkg/github"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store and validate a GitHub token",
	Long: `Prompt for a GitHub token, validate it against the API and save it to the
ghmirror configuration file. The token is used by the 'api' listing backend
and lets --authenticated mode reach private repositories.

The GITHUB_TOKEN environment variable, when set, takes precedence over the
stored token.`,
	RunE: runAuth,
}

func runAuth(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load ghmirror config: %w", err)
	}

	fmt.Print("GitHub token: ")
	tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(string(tokenBytes))

	login, err := github.NewAuthManager().Validate(context.Background(), token)
	if err != nil {
		return err
	}

	cfg.GitHub.Token = token
	if err := cfg.SaveConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("✓ Authenticated as %s\n", login)

	return nil
}
