package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ConfirmWithIO prompts the user and reports whether to execute.
// Nil IO falls back to stdin/stdout.
// Only "y" (any case) approves; every other answer, including EOF, declines.
func ConfirmWithIO(input io.Reader, output io.Writer) (bool, error) {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}

	fmt.Fprint(output, "\n❓ Execute? (y/n): ")

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		// No answer at all; keep the next output off the prompt line.
		fmt.Fprintln(output)
	}

	return strings.ToLower(strings.TrimSpace(line)) == "y", nil
}
