package security

import (
	"fmt"
	"strings"
)

// DefaultPatterns are the substrings considered unconditionally destructive.
var DefaultPatterns = []string{
	"rm -rf /",
	"mkfs",
	"dd if=/dev/",
	":(){:|:&};:",
	"chmod -R 777 /",
}

// CheckResult represents the result of a security check.
type CheckResult struct {
	Dangerous bool
	Pattern   string
}

// Warning describes why the command was blocked.
func (r *CheckResult) Warning() string {
	if !r.Dangerous {
		return ""
	}
	return fmt.Sprintf("command contains %q", r.Pattern)
}

// DangerousCommandChecker detects dangerous commands.
type DangerousCommandChecker struct {
	dangerousPatterns []string
}

// NewDangerousCommandChecker creates a new danger checker using DefaultPatterns.
func NewDangerousCommandChecker() *DangerousCommandChecker {
	return NewDangerousCommandCheckerWithPatterns(DefaultPatterns)
}

// NewDangerousCommandCheckerWithPatterns creates a checker for a custom denylist.
func NewDangerousCommandCheckerWithPatterns(patterns []string) *DangerousCommandChecker {
	return &DangerousCommandChecker{
		dangerousPatterns: append([]string(nil), patterns...),
	}
}

// Check reports the first denylisted substring found in cmd.
func (dc *DangerousCommandChecker) Check(cmd string) *CheckResult {
	for _, pattern := range dc.dangerousPatterns {
		if strings.Contains(cmd, pattern) {
			return &CheckResult{Dangerous: true, Pattern: pattern}
		}
	}
	return &CheckResult{}
}
