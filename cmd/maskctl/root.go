package main

import (
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "maskctl",
		Short:         "Inspect, combine and encode fixed-width bit masks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			log.SetHandler(cli.New(stderr))
			log.SetLevel(log.InfoLevel)
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose log output")

	root.AddCommand(
		newParseCmd(),
		newCombineCmd(),
		newDDLCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
	)
	return root
}
