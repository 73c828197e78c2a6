// =============================================================================
// Repeater List Creator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Repeater List Creator CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   rlist process       - Merge all listing CSV files into one repeater list
//   rlist validate      - Check listing CSV files without converting them
//   rlist version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Row rules, parsing, prompting and output writers
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/repeater-list-creator/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
