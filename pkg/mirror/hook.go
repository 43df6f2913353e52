package mirror

import (
	"fmt"
	"os"
	"path/filepath"
)

// preReceiveHook unconditionally rejects incoming pushes. Installed into
// every freshly cloned mirror so it cannot drift from its upstream.
const preReceiveHook = `#!/bin/sh

echo "Pushing to this repository is forbidden."
echo "This is a mirror of a GitHub repository. Push there instead."
exit 1
`

// installPreReceiveHook writes the push-rejection hook into the mirror at
// repoDir and marks it executable. Any existing pre-receive hook (e.g. from
// a git template) is replaced.
func installPreReceiveHook(repoDir string) error {
	hookDir := filepath.Join(repoDir, "hooks")
	if err := os.MkdirAll(hookDir, 0755); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	hookPath := filepath.Join(hookDir, "pre-receive")
	if err := os.WriteFile(hookPath, []byte(preReceiveHook), 0644); err != nil {
		return fmt.Errorf("failed to write hooks/pre-receive: %w", err)
	}

	info, err := os.Stat(hookPath)
	if err != nil {
		return fmt.Errorf("failed to stat hooks/pre-receive: %w", err)
	}

	// ugo+x; a no-op on filesystems without execute bits.
	if err := os.Chmod(hookPath, info.Mode()|0111); err != nil {
		return fmt.Errorf("failed to set permissions on hooks/pre-receive: %w", err)
	}

	return nil
}
