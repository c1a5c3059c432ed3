package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/term"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// colourEnabled reports whether output may carry ANSI colour. Swatches
// are suppressed when --no-colour is set or stdout is not a terminal.
func colourEnabled() bool {
	if flagNoColour {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// verbosef prints progress chatter to stderr when --verbose is set.
func verbosef(format string, args ...any) {
	if flagVerbose && !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
