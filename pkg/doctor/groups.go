package doctor

import "runtime"

// groupDefinitions defines the check groups with their metadata.
var groupDefinitions = map[string]struct {
	Name        string
	Description string
	Platform    string
	CheckIDs    []string
}{
	GroupBuild: {
		Name:        "Build Toolchain",
		Description: "Required for compiling the container runtime from source",
		Platform:    PlatformLinux, // the runtime only builds on Linux
		CheckIDs:    []string{IDGit, IDMake, IDGCC, IDGo},
	},
	GroupRuntime: {
		Name:        "Container Runtime",
		Description: "Required for running containerized analysis pipelines",
		Platform:    PlatformLinux,
		CheckIDs:    []string{IDSingularity, IDMksquashfs},
	},
	GroupData: {
		Name:        "Sequencing Data",
		Description: "Required for locating sample read files",
		Platform:    "", // works everywhere
		CheckIDs:    []string{IDSearchRoot, IDSampleList},
	},
}

// GetGroups returns all check groups applicable to the current platform.
func GetGroups() []CheckGroup {
	platform := runtime.GOOS
	var groups []CheckGroup

	for _, groupID := range GetAllGroupIDs() {
		def := groupDefinitions[groupID]

		// Skip if group is for a different platform
		if def.Platform != "" && def.Platform != platform {
			continue
		}

		groups = append(groups, CheckGroup{
			ID:          groupID,
			Name:        def.Name,
			Description: def.Description,
			Platform:    def.Platform,
		})
	}

	return groups
}

// GetGroupDefinition returns the definition for a specific group.
func GetGroupDefinition(groupID string) (struct {
	Name        string
	Description string
	Platform    string
	CheckIDs    []string
}, bool) {
	def, ok := groupDefinitions[groupID]
	return def, ok
}

// GetAllGroupIDs returns all group IDs in display order.
func GetAllGroupIDs() []string {
	return []string{GroupBuild, GroupRuntime, GroupData}
}
