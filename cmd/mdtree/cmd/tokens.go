package cmd

import (
	"fmt"
	"os"

	"github.com/npillmayer/mdtree/core"
	"github.com/npillmayer/mdtree/input/markdown/token"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return core.WrapError(err, core.EMISSING, "cannot read %s", args[0])
		}
		tokens := token.Tokenize(string(text))
		data := pterm.TableData{{"#", "Type", "Span", "Text"}}
		for i, tok := range tokens {
			data = append(data, []string{
				fmt.Sprint(i), tok.Type.String(), tok.Span().String(), fmt.Sprintf("%q", tok.Text),
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return core.WrapError(err, core.EINTERNAL, "cannot render tokens")
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
		return err
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
