package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// stdinName labels text read from standard input.
const stdinName = "<stdin>"

// readSource returns the text to style: the named file, or stdin when no
// file (or "-") is given.
func readSource(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return stdinName, string(data), nil
	}

	data, err := os.ReadFile(args[0]) //nolint:gosec // G304: user-chosen source file
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return args[0], string(data), nil
}
