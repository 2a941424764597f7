package core

import (
	"regexp"
	"strings"
)

// CommandPrefix marks the line the model is asked to put its suggestion on.
const CommandPrefix = "COMMAND:"

// fencedBlock matches one whole ``` block with its optional tag. Blocks are
// consumed in order, so the closing fence of one block never opens another.
var fencedBlock = regexp.MustCompile("(?s)```([A-Za-z0-9_+-]*)[ \t]*\r?\n(.*?)\r?\n```")

var shellTags = map[string]bool{
	"":      true,
	"bash":  true,
	"sh":    true,
	"shell": true,
	"zsh":   true,
}

// ExtractCommand finds the suggested command in a reply.
// The first COMMAND: line wins; failing that, the first untagged or
// shell-tagged fenced block. It returns false when the reply contains neither.
func ExtractCommand(reply string) (string, bool) {
	if cmd := commandLine(reply); cmd != "" {
		return cmd, true
	}

	if !strings.Contains(reply, "```") {
		return "", false
	}
	for _, match := range fencedBlock.FindAllStringSubmatch(reply, -1) {
		if !shellTags[strings.ToLower(match[1])] {
			continue
		}
		if cmd := strings.TrimSpace(match[2]); cmd != "" {
			return cmd, true
		}
	}
	return "", false
}

// commandLine returns the trimmed remainder of the first COMMAND: line.
// Only the first such line is considered, even if it is empty.
func commandLine(reply string) string {
	for _, line := range strings.Split(reply, "\n") {
		if strings.HasPrefix(line, CommandPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, CommandPrefix))
		}
	}
	return ""
}
