package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ghmirror",
	Short: "A CLI tool to mirror every GitHub repository of an account to local disk",
	Long: `Ghmirror keeps bare mirror clones of all repositories owned by a GitHub
account under a local root directory. New repositories are cloned with
--mirror, existing ones are refreshed with a pruning remote update, and every
mirror gets a pre-receive hook that rejects pushes.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(initCmd)
}
