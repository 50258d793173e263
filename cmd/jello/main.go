package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/jello/internal/config"
	"github.com/jacoelho/jello/internal/exit"
	"github.com/jacoelho/jello/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	defaults, err := config.LoadDefaults()
	if err != nil {
		result := exit.Failuref("jello:  %v\n", err)
		result.Print()
		return result.ExitCode
	}

	opts, err := config.Parse(os.Args, defaults)
	if err != nil {
		result := exit.Failure(config.HelpText())
		result.Print()
		return result.ExitCode
	}

	if opts.Help {
		result := exit.Failure(config.HelpText())
		result.Print()
		return result.ExitCode
	}
	if opts.Version {
		result := exit.Failure(config.VersionText())
		result.Print()
		return result.ExitCode
	}

	// An interactive terminal with no piped data is a usage error,
	// distinct from empty piped input (which proceeds and fails in
	// ingestion).
	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		result := exit.Failure("jello:  missing piped JSON or JSON Lines data\n")
		result.Print()
		return result.ExitCode
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		result := exit.Failuref("jello:  cannot read input: %v\n", err)
		result.Print()
		return result.ExitCode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}

	// Output is buffered by the pipeline and only flushed after the whole
	// run succeeds; an interrupt terminates with no partial output.
	done := make(chan outcome, 1)
	go func() {
		text, err := pipeline.New(opts).Run(string(input))
		done <- outcome{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return 1
	case res := <-done:
		if res.err != nil {
			result := exit.Failure(pipeline.ErrorMessage(res.err))
			result.Print()
			return result.ExitCode
		}
		result := exit.Success(res.text)
		result.Print()
		return result.ExitCode
	}
}
