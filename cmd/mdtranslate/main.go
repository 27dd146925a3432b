package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/mdtranslate/internal/cli"
	"codeberg.org/snonux/mdtranslate/internal/input"
	"codeberg.org/snonux/mdtranslate/internal/logging"
	"codeberg.org/snonux/mdtranslate/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Interrupts abort the in-flight request and the whole run
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	logger, err := logging.New(flags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	proc := processor.NewProcessor(flags, logger)
	ctx := cmd.Context()

	// Handle --list-models flag
	if flags.ListModels {
		return proc.ListModels(ctx)
	}

	// Handle batch processing
	if flags.BatchFile != "" {
		if len(args) > 0 {
			return fmt.Errorf("--batch cannot be combined with text arguments")
		}
		return proc.ProcessBatch(ctx)
	}

	return proc.ProcessText(ctx, args, cmd.InOrStdin(), input.StdinIsTerminal())
}
