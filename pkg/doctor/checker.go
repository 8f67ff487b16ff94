package doctor

import (
	"runtime"
)

// Checker provides dependency checking functionality.
type Checker struct {
	executor   CommandExecutor
	platform   string
	searchRoot string // sequencing data directory for the data group
	sampleList string // sample list path for the data group
}

// NewChecker creates a new Checker with the real command executor.
func NewChecker() *Checker {
	return &Checker{
		executor: &RealExecutor{},
		platform: runtime.GOOS,
	}
}

// NewCheckerWithExecutor creates a new Checker with a custom executor (for testing).
func NewCheckerWithExecutor(exec CommandExecutor) *Checker {
	return &Checker{
		executor: exec,
		platform: runtime.GOOS,
	}
}

// SetDataPaths sets the paths checked by the data group.
func (c *Checker) SetDataPaths(searchRoot, sampleList string) {
	c.searchRoot = searchRoot
	c.sampleList = sampleList
}

// CheckAll runs all applicable checks and returns groups with results.
func (c *Checker) CheckAll() []CheckGroup {
	groups := GetGroups()
	var result []CheckGroup

	for _, group := range groups {
		checkedGroup := c.CheckGroup(group.ID)
		result = append(result, checkedGroup)
	}

	return result
}

// CheckGroup runs all checks for a specific group.
func (c *Checker) CheckGroup(groupID string) CheckGroup {
	def, ok := GetGroupDefinition(groupID)
	if !ok {
		return CheckGroup{
			ID:   groupID,
			Name: "Unknown",
		}
	}

	group := CheckGroup{
		ID:          groupID,
		Name:        def.Name,
		Description: def.Description,
		Platform:    def.Platform,
	}

	for _, checkID := range def.CheckIDs {
		check := c.runCheck(checkID)
		group.Checks = append(group.Checks, check)
	}

	return group
}

// runCheck runs a specific check by ID.
func (c *Checker) runCheck(checkID string) Check {
	switch checkID {
	case IDGit:
		return CheckGit(c.executor)
	case IDMake:
		return CheckMake(c.executor)
	case IDGCC:
		return CheckGCC(c.executor)
	case IDGo:
		return CheckGo(c.executor)
	case IDSingularity:
		return CheckSingularity(c.executor)
	case IDMksquashfs:
		return CheckMksquashfs(c.executor)
	case IDSearchRoot:
		return CheckSearchRoot(c.executor, c.searchRoot)
	case IDSampleList:
		return CheckSampleList(c.executor, c.sampleList)
	default:
		return Check{
			ID:      checkID,
			Name:    checkID,
			Status:  StatusError,
			Message: "unknown check",
		}
	}
}

// GetCheck runs a single check by ID.
func (c *Checker) GetCheck(checkID string) Check {
	return c.runCheck(checkID)
}

// Summary represents an overall health summary.
type Summary struct {
	Total    int
	OK       int
	Missing  int
	Warnings int
	Errors   int
}

// GetSummary returns a summary of check results.
func (c *Checker) GetSummary(groups []CheckGroup) Summary {
	var summary Summary

	for _, group := range groups {
		for _, check := range group.Checks {
			summary.Total++
			switch check.Status {
			case StatusOK:
				summary.OK++
			case StatusMissing:
				summary.Missing++
			case StatusWarning:
				summary.Warnings++
			case StatusError:
				summary.Errors++
			}
		}
	}

	return summary
}

// HasIssues returns true if any checks have issues.
func (c *Checker) HasIssues(groups []CheckGroup) bool {
	summary := c.GetSummary(groups)
	return summary.Missing > 0 || summary.Errors > 0
}
