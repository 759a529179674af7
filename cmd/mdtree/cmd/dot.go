package cmd

import (
	"github.com/npillmayer/mdtree/backend/dot"
	"github.com/spf13/cobra"
)

var dotCmd = &cobra.Command{
	Use:   "dot FILE",
	Short: "Draw the resolved tree of a document as a GraphViz graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := process(args[0])
		if r == nil {
			return err
		}
		if derr := dot.ToGraphViz(r.File, cmd.OutOrStdout()); derr != nil {
			return derr
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(dotCmd)
}
