package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Lin-Jiong-HDU/unixai/internal/ai"
	"github.com/Lin-Jiong-HDU/unixai/internal/config"
	"github.com/spf13/cobra"
)

var (
	errUsage  = errors.New("a question is required")
	errConfig = errors.New("invalid configuration")
)

// handleError reports err to the user and picks the exit code.
// Only usage, configuration and API status errors are failures; a run that
// ends without executing anything still exits 0.
func handleError(cmd *cobra.Command, err error, w io.Writer) int {
	if err == nil {
		return 0
	}

	var statusErr *ai.StatusError
	var netErr *ai.NetworkError

	switch {
	case errors.Is(err, errUsage):
		if err != errUsage {
			fmt.Fprintf(w, "❌ %v\n\n", err)
		}
		fmt.Fprint(w, cmd.UsageString())
		return 1

	case errors.Is(err, ai.ErrMissingAPIKey):
		fmt.Fprintf(w, "❌ Error: %s not set\n", config.APIKeyEnv)
		fmt.Fprintln(w, "\nTo fix:")
		fmt.Fprintf(w, "export %s='your-key-here'\n", config.APIKeyEnv)
		return 1

	case errors.Is(err, errConfig):
		fmt.Fprintf(w, "❌ Error: %v\n", err)
		return 1

	case errors.As(err, &statusErr):
		fmt.Fprintf(w, "❌ API Error: %d\n", statusErr.StatusCode)
		fmt.Fprintln(w, statusErr.Body)
		return 1

	case errors.As(err, &netErr):
		fmt.Fprintln(w, "❌ Network error. Check internet connection.")
		return 0

	case errors.Is(err, ai.ErrTimeout):
		fmt.Fprintln(w, "⏱️  The API did not answer in time. Try again later.")
		return 0

	default:
		fmt.Fprintf(w, "❌ Error: %v\n", err)
		return 0
	}
}
