package execx

import (
	"fmt"
	"strings"
)

// MissingToolsError lists required tools that could not be found on PATH
type MissingToolsError struct {
	Tools []string
}

func (e *MissingToolsError) Error() string {
	return fmt.Sprintf("required tools not found on PATH: %s (try: nix-shell -p %s)",
		strings.Join(e.Tools, ", "), strings.Join(e.Tools, " "))
}

// Require checks that every tool is reachable and fails fast otherwise
func Require(r Runner, tools ...string) error {
	var missing []string
	for _, tool := range tools {
		if _, err := r.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}

	if len(missing) > 0 {
		return &MissingToolsError{Tools: missing}
	}
	return nil
}
