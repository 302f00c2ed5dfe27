package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"figure-shelf/internal/engineconfig"
	"figure-shelf/internal/layout"
	"figure-shelf/internal/logger"
)

// Viewer opens the window for cfg and blocks until it closes. showScene asks for the scene lines
// of the debug overlay.
type Viewer func(ctx context.Context, cfg layout.Config, p engineconfig.ViewerPrefs, showScene bool) error

// viewFlags override the matching preferences when set on the command line.
type viewFlags struct {
	fullscreen bool
	skipIntro  bool
	showFPS    bool
	screenshot string
}

func (a *app) viewCommand(errOut io.Writer, view Viewer) *cobra.Command {
	var f viewFlags

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the bookcase viewer (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := applyViewFlags(a.prefs(ctx), cmd, f)
			cfg, err := a.catalog(ctx, p)
			if err != nil {
				return err
			}

			lg, closeLog := logger.NewWithFile(errOut, a.level())
			defer closeLog()
			ctx, stop := signal.NotifyContext(logger.WithLogger(ctx, lg), os.Interrupt, syscall.SIGTERM)
			defer stop()

			lg.Info("opening viewer", "shelves", cfg.Bookcase.Shelves, "figures", cfg.FigureCount())
			return view(ctx, cfg, p, a.verbose)
		},
	}
	cmd.Flags().BoolVar(&f.fullscreen, "fullscreen", false, "open fullscreen")
	cmd.Flags().BoolVar(&f.skipIntro, "skip-intro", false, "start at the end of the intro pan")
	cmd.Flags().BoolVar(&f.showFPS, "fps", false, "show the FPS counter")
	cmd.Flags().StringVar(&f.screenshot, "screenshot", "", "write a .webp or .png screenshot once the intro finishes")
	return cmd
}

// applyViewFlags copies explicitly set flags over the preferences.
func applyViewFlags(p engineconfig.ViewerPrefs, cmd *cobra.Command, f viewFlags) engineconfig.ViewerPrefs {
	flags := cmd.Flags()
	if flags.Changed("fullscreen") {
		p.Fullscreen = f.fullscreen
	}
	if flags.Changed("skip-intro") {
		p.SkipIntro = f.skipIntro
	}
	if flags.Changed("fps") {
		p.ShowFPS = f.showFPS
	}
	if flags.Changed("screenshot") {
		p.Screenshot = f.screenshot
	}
	return p
}
