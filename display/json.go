package display

import (
	"encoding/json"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// MarshalJSON marshals JSON with compact formatting when stdout is piped,
// pretty formatting for a terminal
func MarshalJSON(v interface{}) ([]byte, error) {
	if !stdoutIsTerminal() {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

func stdoutIsTerminal() bool {
	if pterm.RawOutput {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
