// Command synxai sends a single prompt to the configured model and prints
// the completion. Handy for checking credentials before starting the server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RichardoC/synxai/internal/config"
	"github.com/RichardoC/synxai/internal/llm"
	"github.com/RichardoC/synxai/internal/logger"
	"go.uber.org/zap"
)

var errUsage = errors.New("usage: synxai <prompt>")

func main() {
	prompt, err := promptFromArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	svc, err := llm.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize LLM service", zap.Error(err))
	}
	defer svc.Close()

	if err := ask(ctx, svc, prompt, os.Stdout); err != nil {
		log.Fatal("failed to generate completion", zap.Error(err))
	}
}

// promptFromArgs joins the command-line words into one prompt.
func promptFromArgs(args []string) (string, error) {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return "", errUsage
	}
	return prompt, nil
}

func ask(ctx context.Context, gen llm.Generator, prompt string, out io.Writer) error {
	completion, err := gen.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, completion)
	return err
}
