package provision

import (
	"fmt"
	"os"
	"strings"
)

// profileMarker guards the PATH block so repeated runs never append twice.
const profileMarker = "# added by seqops provision"

// AppendProfileBlock appends lines to a shell profile file, wrapped in a
// marker comment. If the marker is already present the file is left
// untouched. The profile is created if absent.
func AppendProfileBlock(path string, lines []string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read profile: %w", err)
	}

	if strings.Contains(string(existing), profileMarker) {
		return nil
	}

	var sb strings.Builder
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(profileMarker + "\n")
	for _, line := range lines {
		sb.WriteString(line + "\n")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open profile: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}
