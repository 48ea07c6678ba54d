package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root, cleanup := newRootCmd()
	err := root.ExecuteContext(ctx)
	cleanup()
	// an interrupt exits quietly with 130
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	stop()
	if errors.Is(err, context.Canceled) {
		os.Exit(130)
	}
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand starts the interactive questionnaire. cleanup releases what the
// command opened and must run after Execute.
func newRootCmd() (*cobra.Command, func()) {
	var (
		envFile string
		a       *app
	)

	opts := &surveyOptions{}
	root := &cobra.Command{
		Use:           "questionnaire",
		Short:         "Generate questionnaires with a language model and record the answers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if a, err = newApp(envFile); err != nil {
				return err
			}
			if a.logFile != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "日誌文件：%s\n", a.logFile)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSurveyCmd(cmd, a, opts)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load before reading configuration")
	addSurveyFlags(root, opts)

	current := func() *app { return a }
	root.AddCommand(
		newSurveyCmd(current),
		newGenerateCmd(current),
		newPreviewCmd(current),
		newCompareCmd(current),
		newHistoryCmd(current),
	)
	return root, func() {
		if a != nil {
			a.Close()
		}
	}
}
