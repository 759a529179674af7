package cmd

import (
	"github.com/goccy/go-json"
	"github.com/google/renameio"
	"github.com/npillmayer/mdtree/backend/jsontree"
	"github.com/npillmayer/mdtree/core"
	"github.com/spf13/cobra"
)

var outFile string

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a document and print its resolved tree as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := process(args[0])
		if r == nil {
			return err
		}
		var b []byte
		var jerr error
		if settings.Indent {
			b, jerr = jsontree.Marshal(r.File, r.Diagnostics)
		} else {
			b, jerr = json.Marshal(jsontree.Convert(r.File, r.Diagnostics))
		}
		if jerr != nil {
			return core.WrapError(jerr, core.EINTERNAL, "cannot serialize %s", args[0])
		}
		if outFile == "" {
			b = append(b, '\n')
			if _, werr := cmd.OutOrStdout().Write(b); werr != nil {
				return werr
			}
		} else if werr := renameio.WriteFile(outFile, b, 0644); werr != nil {
			return core.WrapError(werr, core.EINVALID, "cannot write %s", outFile)
		} else {
			tracer().Infof("wrote %s", outFile)
		}
		return err
	},
}

func init() {
	parseCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(parseCmd)
}

