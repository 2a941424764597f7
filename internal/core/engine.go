package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Lin-Jiong-HDU/unixai/internal/ai"
	"github.com/Lin-Jiong-HDU/unixai/internal/core/security"
	"github.com/Lin-Jiong-HDU/unixai/internal/terminal"
)

// Engine runs one question through ask, extract, screen, confirm and execute
type Engine struct {
	ai       ai.Provider
	executor *Executor
	checker  *security.DangerousCommandChecker
	renderer *terminal.Renderer
	style    *terminal.StyleConfig
	in       io.Reader
	out      io.Writer
	logger   *slog.Logger
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithIO sets where the confirmation is read from and output is written to.
func WithIO(in io.Reader, out io.Writer) EngineOption {
	return func(e *Engine) {
		e.in = in
		e.out = out
	}
}

// WithRenderer renders the AI reply as markdown. Without it the reply is printed raw.
func WithRenderer(r *terminal.Renderer) EngineOption {
	return func(e *Engine) { e.renderer = r }
}

// WithChecker replaces the default denylist.
func WithChecker(c *security.DangerousCommandChecker) EngineOption {
	return func(e *Engine) { e.checker = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a new engine
func NewEngine(aiProvider ai.Provider, executor *Executor, opts ...EngineOption) *Engine {
	e := &Engine{
		ai:       aiProvider,
		executor: executor,
		checker:  security.NewDangerousCommandChecker(),
		style:    terminal.DefaultStyleConfig(),
		in:       os.Stdin,
		out:      os.Stdout,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process handles a question from input to output.
// Errors are only returned for failures to get a reply from the provider;
// everything after that ends in an Outcome.
func (e *Engine) Process(ctx context.Context, question string) (Outcome, error) {
	fmt.Fprintf(e.out, "🤖 Question: %s\n🔄 Asking AI...\n\n", question)

	reply, err := e.ai.Ask(ctx, question)
	if err != nil {
		return OutcomeFailed, err
	}

	e.displayReply(reply)

	command, found := ExtractCommand(reply)
	if !found {
		e.logger.Debug("no command in reply")
		fmt.Fprintln(e.out)
		fmt.Fprintln(e.out, e.style.Subtle.Render("No command found in the response."))
		return OutcomeNoCommand, nil
	}
	e.logger.Debug("extracted command", "command", command)

	fmt.Fprintf(e.out, "\n🔧 Found command: %s\n", e.style.Command.Render(command))

	if check := e.checker.Check(command); check.Dangerous {
		e.logger.Info("blocked dangerous command", "command", command, "pattern", check.Pattern)
		fmt.Fprintln(e.out, e.style.Error.Render("⚠️  DANGER: This command could harm your system!"))
		fmt.Fprintln(e.out, e.style.Subtle.Render("   ("+check.Warning()+")"))
		return OutcomeDangerous, nil
	}

	if err := CheckSyntax(command); err != nil {
		e.logger.Debug("command failed to parse", "error", err)
		fmt.Fprintln(e.out, e.style.Warning.Render(fmt.Sprintf("⚠️  This may not be valid shell syntax: %v", err)))
	}

	approved, err := terminal.ConfirmWithIO(e.in, e.out)
	if err != nil {
		fmt.Fprintln(e.out, e.style.Error.Render(fmt.Sprintf("❌ Error: %v", err)))
		return OutcomeFailed, nil
	}
	if !approved {
		fmt.Fprintln(e.out, "❌ Not executed")
		return OutcomeDeclined, nil
	}

	return e.execute(ctx, command), nil
}

func (e *Engine) execute(ctx context.Context, command string) Outcome {
	fmt.Fprint(e.out, "\n⚡ Executing...\n\n")

	result, err := e.executor.Execute(ctx, command)
	if err != nil {
		e.logger.Info("execution failed", "error", err)
		fmt.Fprintln(e.out, e.style.Error.Render(fmt.Sprintf("❌ Error: %v", err)))
		return OutcomeFailed
	}

	if result.TimedOut {
		e.logger.Info("command timed out", "timeout", e.executor.timeout)
		fmt.Fprintln(e.out, e.style.Warning.Render(fmt.Sprintf("⏱️  Timeout after %s", e.executor.timeout)))
		return OutcomeTimedOut
	}

	e.logger.Debug("command finished", "exit_code", result.ExitCode)

	if strings.TrimSpace(result.Stdout) != "" {
		fmt.Fprintln(e.out, e.style.Success.Render("✅ Output:"))
		fmt.Fprintln(e.out, result.Stdout)
	} else if result.ExitCode == 0 {
		fmt.Fprintln(e.out, e.style.Success.Render("✅ Command completed successfully"))
		fmt.Fprintln(e.out, e.style.Subtle.Render("💡 No output (normal if nothing matched)"))
	}

	if strings.TrimSpace(result.Stderr) != "" {
		fmt.Fprintln(e.out, e.style.Warning.Render("⚠️  Warnings:"))
		fmt.Fprintln(e.out, result.Stderr)
	}

	return OutcomeExecuted
}

// displayReply prints the reply between rules
func (e *Engine) displayReply(reply string) {
	fmt.Fprintln(e.out, e.style.Title.Render("💡 AI Response:"))
	fmt.Fprintln(e.out, e.style.Rule())
	if e.renderer != nil {
		fmt.Fprint(e.out, e.renderer.Render(reply))
	} else {
		fmt.Fprintln(e.out, reply)
	}
	fmt.Fprintln(e.out, e.style.Rule())
}
