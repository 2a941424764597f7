package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/Lin-Jiong-HDU/unixai/internal/ai/openai"
	"github.com/Lin-Jiong-HDU/unixai/internal/config"
	"github.com/Lin-Jiong-HDU/unixai/internal/core"
	"github.com/Lin-Jiong-HDU/unixai/internal/logging"
	"github.com/Lin-Jiong-HDU/unixai/internal/terminal"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	model      string
	noRender   bool
	verbose    bool
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "unixai <question...>",
		Short: "Ask an AI for a Unix command and run it",
		Long: `unixai - asks a language model how to do something in the shell,
shows the suggested command, and runs it after you confirm.

The API key is read from OPENAI_API_KEY.`,
		Example: `  unixai find large files
  unixai 'check disk space'
  unixai list all processes`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errUsage
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd.Context(), opts, args, stdin, stdout, stderr)
		},
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	flags := cmd.Flags()
	// Everything after the first word belongs to the question.
	flags.SetInterspersed(false)
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.unixai/config.yaml)")
	flags.StringVarP(&opts.model, "model", "m", "", "model to ask (overrides ai.model)")
	flags.BoolVar(&opts.noRender, "no-render", false, "print the reply without markdown rendering")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")

	return cmd
}

func runAsk(ctx context.Context, opts *rootOptions, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	question := strings.Join(args, " ")
	if strings.TrimSpace(question) == "" {
		return errUsage
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}
	if opts.model != "" {
		cfg.AI.Model = opts.model
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}

	runID := uuid.NewString()
	level := logging.ParseLevel(cfg.LogLevel)
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(stderr, level, runID)

	client := openai.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL,
		openai.WithMaxTokens(cfg.AI.MaxTokens),
		openai.WithTimeout(cfg.AI.RequestTimeout()),
		openai.WithRequestID(runID),
		openai.WithLogger(logger),
	)

	engineOpts := []core.EngineOption{
		core.WithIO(stdin, stdout),
		core.WithLogger(logger),
	}
	if cfg.RenderMarkdown && !opts.noRender {
		renderer, err := terminal.NewRenderer(outputWidth(stdout))
		if err != nil {
			logger.Warn("markdown rendering disabled", "error", err)
		} else {
			engineOpts = append(engineOpts, core.WithRenderer(renderer))
		}
	}

	engine := core.NewEngine(client, core.NewExecutor(cfg.Exec.Shell, cfg.Exec.CommandTimeout()), engineOpts...)

	outcome, err := engine.Process(ctx, question)
	logger.Debug("run finished", "outcome", outcome.String())
	return err
}

func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return terminal.Width(f)
	}
	return terminal.DefaultWidth
}

// run executes the root command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdin, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return handleError(cmd, err, stderr)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
