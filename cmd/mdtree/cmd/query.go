package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/mdtree/engine/query"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query FILE XPATH",
	Short: "Evaluate an XPath expression on the resolved tree of a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := process(args[0])
		if r == nil {
			return err
		}
		if qerr := evaluate(cmd.OutOrStdout(), r.File, args[1]); qerr != nil {
			return qerr
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

// evaluate prints the result of an XPath expression, one node per line.
func evaluate(w io.Writer, root node.Node, expr string) error {
	v, err := query.Evaluate(root, expr)
	if err != nil {
		return err
	}
	nodes, ok := v.([]node.Node)
	if !ok {
		fmt.Fprintln(w, v)
		return nil
	}
	for _, n := range nodes {
		fmt.Fprintf(w, "%-20s %-12s %s\n", n.Type(), n.Pos(), excerpt(node.TextContent(n), 40))
	}
	fmt.Fprintf(w, "(%d nodes)\n", len(nodes))
	return nil
}

func excerpt(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > max {
		return string(r[:max]) + "…"
	}
	return s
}
