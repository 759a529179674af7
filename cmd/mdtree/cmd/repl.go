package cmd

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/mdtree/core"
	"github.com/npillmayer/mdtree/engine/pipeline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl FILE",
	Short: "Interactively query the resolved tree of a document",
	Long: `repl loads a document and reads XPath expressions, one per line,
printing the matching nodes. Besides expressions, it understands

  :diag     print the diagnostics again
  :reload   re-read the document
  :quit     leave (as does <ctrl>D)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _ := process(args[0])
		if r == nil {
			return core.Error(core.EINTERNAL, "cannot load %s", args[0])
		}
		rl, err := readline.New("mdtree > ")
		if err != nil {
			return core.WrapError(err, core.EINTERNAL, "cannot start REPL")
		}
		defer rl.Close()
		intp := &Intp{repl: rl, path: args[0], result: r}
		pterm.Info.Println("Quit with <ctrl>D")
		intp.REPL()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// Intp is our interpreter object.
type Intp struct {
	repl   *readline.Instance
	path   string
	result *pipeline.Result
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.execute(line); quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) execute(line string) (quit bool) {
	switch line {
	case ":quit", ":q":
		return true
	case ":diag":
		printDiagnostics(intp.result)
	case ":reload":
		if r, _ := process(intp.path); r != nil {
			intp.result = r
			pterm.Info.Printfln("reloaded %s", intp.path)
		}
	default:
		if err := evaluate(intp.repl.Stdout(), intp.result.File, line); err != nil {
			pterm.Error.Println(core.UserMessage(err))
		}
	}
	return false
}
