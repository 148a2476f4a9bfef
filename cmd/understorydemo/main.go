// Command understorydemo exercises understory's reactive core end to
// end: a property store driven through a style cascade, dirty-channel
// tracking of the writes, and an imaging recording replayed through the
// ebitenimaging reference backend. It has three subcommands: run opens
// an interactive window, record captures one recording to a .imgrec
// file, and inspect summarizes a recorded file without a window.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "understorydemo",
		Short: "Demo programs exercising the understory reactive core",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")

	newLogger := func() *zap.SugaredLogger {
		var cfg zap.Config
		if verbose {
			cfg = zap.NewDevelopmentConfig()
		} else {
			cfg = zap.NewProductionConfig()
		}
		logger, err := cfg.Build()
		if err != nil {
			logger = zap.NewNop()
		}
		return logger.Sugar()
	}

	root.AddCommand(newRunCmd(newLogger))
	root.AddCommand(newRecordCmd(newLogger))
	root.AddCommand(newInspectCmd(newLogger))
	return root
}
