// Package cli implements the shelf command-line interface.
//
// The root command opens the viewer; layout prints the computed placements without a window,
// and config init writes the default viewer preferences. All commands accept --verbose (-v)
// for debug logging, --config for the preferences file and --catalog for the shelf contents.
// The logger travels through the command context.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"figure-shelf/internal/catalog"
	"figure-shelf/internal/engineconfig"
	"figure-shelf/internal/layout"
	"figure-shelf/internal/logger"
)

// app holds the persistent flags shared by all commands.
type app struct {
	verbose     bool
	configPath  string
	catalogPath string
}

func (a *app) level() log.Level {
	if a.verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// prefs loads the viewer preferences. A broken file is logged and the defaults are used.
func (a *app) prefs(ctx context.Context) engineconfig.ViewerPrefs {
	p, err := engineconfig.Load(a.configPath)
	if err != nil {
		logger.FromContext(ctx).Warn("using default viewer preferences", "err", err)
	}
	return p
}

// catalog returns the shelf contents from --catalog, then the preferences, then the built-in
// default.
func (a *app) catalog(ctx context.Context, p engineconfig.ViewerPrefs) (layout.Config, error) {
	path := a.catalogPath
	if path == "" {
		path = p.Catalog
	}
	if path == "" {
		logger.FromContext(ctx).Debug("using built-in catalog")
		return catalog.Default()
	}
	logger.FromContext(ctx).Debug("loading catalog", "path", path)
	return catalog.Load(path)
}

// newRootCommand builds the command tree writing its output to out and logs to errOut. view opens
// the window.
func newRootCommand(out, errOut io.Writer, view Viewer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "shelf",
		Short:        "Shelf shows a 3D bookcase of figures",
		Long:         `Shelf opens a window with a wooden bookcase holding one box per figure in the catalog. The camera pans up the bookcase once, then follows the mouse: drag to orbit, scroll to zoom.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := logger.WithLogger(cmd.Context(), logger.New(errOut, a.level()))
			cmd.SetContext(ctx)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", engineconfig.DefaultPath, "viewer preferences file (TOML)")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "catalog file (YAML); empty uses the preferences, then the built-in catalog")

	viewCmd := a.viewCommand(errOut, view)
	root.RunE = viewCmd.RunE
	root.Flags().AddFlagSet(viewCmd.Flags())

	root.AddCommand(viewCmd)
	root.AddCommand(a.layoutCommand())
	root.AddCommand(a.configCommand())
	return root
}

// Execute runs the shelf CLI and returns an error if any command fails. view is called by the
// default command to open the window.
//
//	func main() {
//	    if err := cli.Execute(graphics.View); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(view Viewer) error {
	return newRootCommand(os.Stdout, os.Stderr, view).ExecuteContext(context.Background())
}
