package core

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// CheckSyntax parses command as bash and returns the parse error, if any.
// The result is advisory: models sometimes wrap commands in prose or
// placeholders like <file>, which the shell would reject.
func CheckSyntax(command string) error {
	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	_, err := parser.Parse(strings.NewReader(command), "")
	return err
}
