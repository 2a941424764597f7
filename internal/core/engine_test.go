package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Lin-Jiong-HDU/unixai/internal/ai"
	"github.com/Lin-Jiong-HDU/unixai/internal/core/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	reply     string
	err       error
	questions []string
}

func (m *mockProvider) Ask(ctx context.Context, question string) (string, error) {
	m.questions = append(m.questions, question)
	return m.reply, m.err
}

func newTestEngine(reply, answer string) (*Engine, *mockProvider, *strings.Builder) {
	provider := &mockProvider{reply: reply}
	out := &strings.Builder{}
	engine := NewEngine(provider, NewExecutor("", 5*time.Second), WithIO(strings.NewReader(answer), out))
	return engine, provider, out
}

func TestEngine_Process_ExecutesOnYes(t *testing.T) {
	reply := "COMMAND: echo found-it\nEXPLANATION: prints a marker\nNOTES: harmless"
	engine, provider, out := newTestEngine(reply, "y\n")

	outcome, err := engine.Process(context.Background(), "print a marker")
	require.NoError(t, err)

	assert.Equal(t, OutcomeExecuted, outcome)
	assert.Equal(t, []string{"print a marker"}, provider.questions)

	output := out.String()
	assert.Contains(t, output, "Question: print a marker")
	assert.Contains(t, output, "EXPLANATION: prints a marker")
	assert.Contains(t, output, "Found command:")
	assert.Contains(t, output, "Execute? (y/n)")
	assert.Contains(t, output, "Output:")
	assert.Contains(t, output, "found-it")
}

func TestEngine_Process_DeclineDoesNotRun(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "marker")
	engine, _, out := newTestEngine("COMMAND: touch "+marker, "n\n")

	outcome, err := engine.Process(context.Background(), "create a file")
	require.NoError(t, err)

	assert.Equal(t, OutcomeDeclined, outcome)
	assert.Contains(t, out.String(), "Not executed")
	assert.NoFileExists(t, marker)
}

func TestEngine_Process_AnyOtherAnswerDeclines(t *testing.T) {
	for _, answer := range []string{"yes\n", "\n", "", "nope\n"} {
		t.Run(answer, func(t *testing.T) {
			marker := filepath.Join(t.TempDir(), "marker")
			engine, _, _ := newTestEngine("COMMAND: touch "+marker, answer)

			outcome, err := engine.Process(context.Background(), "create a file")
			require.NoError(t, err)

			assert.Equal(t, OutcomeDeclined, outcome)
			assert.NoFileExists(t, marker)
		})
	}
}

func TestEngine_Process_DangerousCommandNeverPrompts(t *testing.T) {
	dangerous := []string{
		"rm -rf /",
		"sudo mkfs.ext4 /dev/sda1",
		"dd if=/dev/zero of=/dev/sda",
		":(){:|:&};:",
		"chmod -R 777 /",
	}

	for _, cmd := range dangerous {
		t.Run(cmd, func(t *testing.T) {
			engine, _, out := newTestEngine("COMMAND: "+cmd+"\nEXPLANATION: destroys things", "y\n")

			outcome, err := engine.Process(context.Background(), "wipe everything")
			require.NoError(t, err)

			assert.Equal(t, OutcomeDangerous, outcome)
			assert.Contains(t, out.String(), "DANGER")
			assert.NotContains(t, out.String(), "Execute? (y/n)")
			assert.NotContains(t, out.String(), "Executing")
		})
	}
}

func TestEngine_Process_NoCommand(t *testing.T) {
	engine, _, out := newTestEngine("The ls command lists files.", "y\n")

	outcome, err := engine.Process(context.Background(), "what does ls do")
	require.NoError(t, err)

	assert.Equal(t, OutcomeNoCommand, outcome)
	assert.Contains(t, out.String(), "The ls command lists files.")
	assert.NotContains(t, out.String(), "Execute? (y/n)")
}

func TestEngine_Process_FencedBlock(t *testing.T) {
	engine, _, out := newTestEngine("Run this:\n```bash\necho from-block\n```", "Y\n")

	outcome, err := engine.Process(context.Background(), "echo something")
	require.NoError(t, err)

	assert.Equal(t, OutcomeExecuted, outcome)
	assert.Contains(t, out.String(), "from-block")
}

func TestEngine_Process_EmptyOutputSuccess(t *testing.T) {
	engine, _, out := newTestEngine("COMMAND: true", "y\n")

	outcome, err := engine.Process(context.Background(), "do nothing")
	require.NoError(t, err)

	assert.Equal(t, OutcomeExecuted, outcome)
	assert.Contains(t, out.String(), "Command completed successfully")
	assert.Contains(t, out.String(), "No output")
}

func TestEngine_Process_StderrIsAdditive(t *testing.T) {
	engine, _, out := newTestEngine("COMMAND: echo visible; echo careful >&2", "y\n")

	outcome, err := engine.Process(context.Background(), "both streams")
	require.NoError(t, err)

	assert.Equal(t, OutcomeExecuted, outcome)
	output := out.String()
	assert.Contains(t, output, "Output:")
	assert.Contains(t, output, "visible")
	assert.Contains(t, output, "Warnings:")
	assert.Contains(t, output, "careful")
}

func TestEngine_Process_FailureWithoutOutput(t *testing.T) {
	engine, _, out := newTestEngine("COMMAND: echo broken >&2; exit 2", "y\n")

	outcome, err := engine.Process(context.Background(), "fail")
	require.NoError(t, err)

	assert.Equal(t, OutcomeExecuted, outcome)
	output := out.String()
	assert.NotContains(t, output, "completed successfully")
	assert.Contains(t, output, "Warnings:")
	assert.Contains(t, output, "broken")
}

func TestEngine_Process_Timeout(t *testing.T) {
	provider := &mockProvider{reply: "COMMAND: sleep 5"}
	out := &strings.Builder{}
	engine := NewEngine(provider, NewExecutor("", 100*time.Millisecond), WithIO(strings.NewReader("y\n"), out))

	outcome, err := engine.Process(context.Background(), "wait")
	require.NoError(t, err)

	assert.Equal(t, OutcomeTimedOut, outcome)
	assert.Contains(t, out.String(), "Timeout after 100ms")
}

func TestEngine_Process_ExecutionError(t *testing.T) {
	provider := &mockProvider{reply: "COMMAND: echo hi"}
	out := &strings.Builder{}
	engine := NewEngine(provider, NewExecutor("/nonexistent/shell", time.Second), WithIO(strings.NewReader("y\n"), out))

	outcome, err := engine.Process(context.Background(), "say hi")
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, outcome)
	assert.Contains(t, out.String(), "Error:")
}

func TestEngine_Process_SyntaxWarningStillPrompts(t *testing.T) {
	engine, _, out := newTestEngine("COMMAND: cat <file>", "n\n")

	outcome, err := engine.Process(context.Background(), "show a file")
	require.NoError(t, err)

	assert.Equal(t, OutcomeDeclined, outcome)
	assert.Contains(t, out.String(), "may not be valid shell syntax")
	assert.Contains(t, out.String(), "Execute? (y/n)")
}

func TestEngine_Process_ProviderError(t *testing.T) {
	provider := &mockProvider{err: &ai.StatusError{StatusCode: 500, Body: "boom"}}
	out := &strings.Builder{}
	engine := NewEngine(provider, NewExecutor("", time.Second), WithIO(strings.NewReader("y\n"), out))

	_, err := engine.Process(context.Background(), "anything")

	var statusErr *ai.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 500, statusErr.StatusCode)
	assert.NotContains(t, out.String(), "AI Response")
}

func TestEngine_Process_RunsInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.bin"), make([]byte, 2048), 0o644))
	t.Chdir(dir)

	engine, _, out := newTestEngine("COMMAND: find . -type f -size +1k\nEXPLANATION: ...\nNOTES: ...", "y\n")

	outcome, err := engine.Process(context.Background(), "find large files")
	require.NoError(t, err)

	assert.Equal(t, OutcomeExecuted, outcome)
	assert.Contains(t, out.String(), "./big.bin")
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "executed", OutcomeExecuted.String())
	assert.Equal(t, "dangerous", OutcomeDangerous.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}

func TestEngine_Process_InterruptedCommandIsReported(t *testing.T) {
	engine, _, out := newTestEngine("COMMAND: sleep 5", "y\n")
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(200*time.Millisecond, cancel)

	outcome, err := engine.Process(ctx, "wait a while")
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, outcome)
	assert.Contains(t, out.String(), "Error: interrupted")
}

func TestEngine_Process_UsesCustomChecker(t *testing.T) {
	provider := &mockProvider{reply: "COMMAND: echo shutdown-now"}
	out := &strings.Builder{}
	engine := NewEngine(provider, NewExecutor("", time.Second),
		WithIO(strings.NewReader("y\n"), out),
		WithChecker(security.NewDangerousCommandCheckerWithPatterns([]string{"shutdown"})),
	)

	outcome, err := engine.Process(context.Background(), "turn it off")
	require.NoError(t, err)

	assert.Equal(t, OutcomeDangerous, outcome)
	assert.Contains(t, out.String(), `"shutdown"`)
	assert.NotContains(t, out.String(), "Execute? (y/n)")
}
