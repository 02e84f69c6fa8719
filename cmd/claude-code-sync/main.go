// Command claude-code-sync records Claude Code releases validated in CI in
// the compatibility table and pins the latest one for the integration tests.
package main

import (
	"fmt"
	"os"

	"github.com/chis/compatsync/internal/update"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps usage mistakes to 2 and every other failure to 1.
func exitCode(err error) int {
	if update.IsUsageError(err) {
		return 2
	}
	return 1
}
