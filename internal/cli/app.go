// Package cli drives the quiz API from a terminal: one subcommand per
// screen of the web client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"wiki-quiz/internal/retrieval"
	"wiki-quiz/internal/render"
)

const progressMessage = "Generating quiz..."

// ErrUsage is returned for an unknown command or wrong arguments.
var ErrUsage = errors.New("usage")

// Options controls terminal-only behavior.
type Options struct {
	// Progress prints a status line to Err while a generation is running.
	Progress bool
	Out      io.Writer
	Err      io.Writer
}

// Run executes one command against the orchestrator. Failures the user
// should see are rendered to opts.Err and returned.
func Run(ctx context.Context, orch *retrieval.Orchestrator, args []string, opts Options) error {
	if len(args) == 0 {
		return ErrUsage
	}
	out := render.NewRenderer(opts.Out)
	errOut := render.NewRenderer(opts.Err)

	switch args[0] {
	case "generate":
		if len(args) != 2 {
			return ErrUsage
		}
		if opts.Progress {
			fmt.Fprintln(opts.Err, progressMessage)
		}
		res, err := orch.Generate(ctx, args[1])
		if err != nil {
			return report(errOut, err)
		}
		return out.Quiz(res)

	case "history":
		if len(args) != 1 {
			return ErrUsage
		}
		entries, err := orch.LoadHistory(ctx)
		if err != nil {
			return report(errOut, err)
		}
		return out.History(entries, orch.IsLoading)

	case "show":
		if len(args) != 2 {
			return ErrUsage
		}
		res, err := orch.OpenQuiz(ctx, args[1])
		if err != nil {
			return report(errOut, err)
		}
		return out.Quiz(res)
	}
	return ErrUsage
}

// Usage writes the command summary.
func Usage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  %s [flags] generate <wikipedia-url>\n", name)
	fmt.Fprintf(w, "  %s [flags] history\n", name)
	fmt.Fprintf(w, "  %s [flags] show <quiz-id>\n", name)
}

func report(r *render.Renderer, err error) error {
	var f *retrieval.Failure
	if errors.As(err, &f) {
		_ = r.Failure(f.Message)
		return err
	}
	_ = r.Failure(err.Error())
	return err
}
