package provision

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// OSRelease holds the fields of /etc/os-release needed for distro branching.
type OSRelease struct {
	ID        string // e.g., "ubuntu"
	IDLike    string // e.g., "debian"
	VersionID string // e.g., "22.04"
	Name      string // e.g., "Ubuntu"
}

// ReadOSRelease parses an os-release file. The format is shell-style
// KEY=VALUE with optional quoting; comments and blank lines are skipped.
func ReadOSRelease(path string) (*OSRelease, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read os-release: %w", err)
	}
	defer file.Close()

	fields := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		fields[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read os-release: %w", err)
	}

	return &OSRelease{
		ID:        fields["ID"],
		IDLike:    fields["ID_LIKE"],
		VersionID: fields["VERSION_ID"],
		Name:      fields["NAME"],
	}, nil
}

// DebianFamily reports whether the distro uses apt.
func (o *OSRelease) DebianFamily() bool {
	if o.ID == "debian" || o.ID == "ubuntu" {
		return true
	}
	for _, like := range strings.Fields(o.IDLike) {
		if like == "debian" || like == "ubuntu" {
			return true
		}
	}
	return false
}
