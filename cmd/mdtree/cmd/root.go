package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/npillmayer/mdtree/core"
	"github.com/npillmayer/mdtree/core/config"
	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/engine/pipeline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'mdtree.cli'.
func tracer() tracing.Trace {
	return tracing.Select("mdtree.cli")
}

var (
	cfgFile   string
	strict    bool
	lang      string
	resources bool
	settings  *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "mdtree",
	Short: "Parse Markdown documents into resolved document trees",
	Long: `mdtree tokenizes and parses Markdown documents, applies macros
(figures, tables, listings, applications, references) and resolves
citations to numbered entities.

The resulting tree may be written as JSON, drawn as a GraphViz graph
or queried with XPath expressions.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	initDisplay()
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		return core.ExitCode(err)
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on error diagnostics")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "document language, e.g. en or ru")
	rootCmd.PersistentFlags().BoolVar(&resources, "check-resources", false, "check that referenced files exist")
}

// setup loads the settings and configures tracing before any sub-command runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		if settings, err = config.Load(cfgFile); err != nil {
			return err
		}
	} else {
		settings = config.Default()
	}
	flags := cmd.Flags()
	if flags.Changed("strict") {
		settings.Strict = strict
	}
	if flags.Changed("check-resources") {
		settings.Resources = resources
	}
	if flags.Changed("lang") {
		settings.Language = lang
		if err = settings.Validate(); err != nil {
			return err
		}
	}
	return setupTracing(settings)
}

func setupTracing(s *config.Settings) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(s.TraceConf(), "trace", trace2go.ReplaceTracers(true)); err != nil {
		return core.WrapError(err, core.EINVALID, "error configuring tracing")
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// process reads a document and runs the pipeline over it, using the
// current settings. Diagnostics are printed to stderr.
func process(path string) (*pipeline.Result, error) {
	text, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.WrapError(err, core.EMISSING, "document not found: %s", path)
	} else if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read %s", path)
	}
	opts := &pipeline.Options{
		Language: settings.Tag(),
		Strict:   settings.Strict,
	}
	if settings.Resources {
		opts.Resources = os.DirFS(filepath.Dir(path))
	}
	r, err := pipeline.Process(string(text), path, opts)
	if r != nil {
		printDiagnostics(r)
	}
	return r, err
}

func printDiagnostics(r *pipeline.Result) {
	for _, d := range r.Diagnostics {
		msg := d.Format(r.Source)
		switch d.Severity {
		case diag.Warning:
			pterm.Warning.WithWriter(os.Stderr).Println(msg)
		default:
			pterm.Error.WithWriter(os.Stderr).Println(msg)
		}
	}
	tracer().Debugf("%d diagnostics for %s", len(r.Diagnostics), r.Source.Path)
}
