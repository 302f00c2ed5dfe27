package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"figure-shelf/internal/layout"
	"figure-shelf/internal/logger"
)

var errOverlap = errors.New("figures overlap")

func (a *app) layoutCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print panel and figure placements without opening a window",
		Long: `Print panel and figure placements without opening a window.

Builds the bookcase from the catalog exactly as the viewer does and prints every panel and
figure box with its center and size. Collisions are listed afterwards: figures overlapping a
neighbour on the same shelf, figures cutting into a panel such as the shelf above, and
figures standing on top of the case. With --strict any collision is an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLayout(cmd.Context(), cmd.OutOrStdout(), strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any figure collides with a neighbour or a panel")
	return cmd
}

func (a *app) runLayout(ctx context.Context, w io.Writer, strict bool) error {
	cfg, err := a.catalog(ctx, a.prefs(ctx))
	if err != nil {
		return err
	}
	l, err := layout.Build(cfg)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("layout built", "panels", len(l.Panels), "figures", len(l.Figures))

	b := l.Bookcase
	printTitle(w, fmt.Sprintf("Bookcase %d shelves, %sx%sx%s, spacing %s",
		b.Shelves, num(b.Width), num(b.Height), num(b.Depth), num(layout.Spacing(b))))
	fmt.Fprintln(w, panelTable(l))
	fmt.Fprintln(w, figureTable(l))

	overlaps := l.Overlaps()
	if len(overlaps) == 0 {
		printSuccess(w, "%d figures, no overlaps", len(l.Figures))
		return nil
	}
	for _, o := range overlaps {
		printWarning(w, "%s", describeOverlap(l, o))
	}
	if strict {
		return fmt.Errorf("layout: %d collisions: %w", len(overlaps), errOverlap)
	}
	return nil
}

func describeOverlap(l *layout.Layout, o layout.Overlap) string {
	shelf := l.Shelf(o.Row)
	name := shelf[o.A].Figure.Name
	switch o.Kind {
	case layout.OverlapPanel:
		panel := o.Panel.Kind.String() + " panel"
		if o.Panel.Kind == layout.PanelShelf {
			panel = fmt.Sprintf("shelf of row %d", o.Panel.Row)
		}
		return fmt.Sprintf("row %d: %s cuts into the %s by %s", o.Row, name, panel, num(o.Depth))
	case layout.OverlapOutside:
		return fmt.Sprintf("row %d: %s rises %s above the bookcase", o.Row, name, num(o.Depth))
	}
	return fmt.Sprintf("row %d: %s overlaps %s by %s", o.Row, name, shelf[o.B].Figure.Name, num(o.Depth))
}

func panelTable(l *layout.Layout) string {
	rows := make([][]string, 0, len(l.Panels))
	for _, p := range l.Panels {
		row := "-"
		if p.Kind == layout.PanelShelf {
			row = strconv.Itoa(p.Row)
		}
		rows = append(rows, []string{p.Kind.String(), row, vec(p.Box.Center), vec(p.Box.Size)})
	}
	return renderTable([]string{"Panel", "Row", "Center", "Size"}, rows)
}

func figureTable(l *layout.Layout) string {
	rows := make([][]string, 0, len(l.Figures))
	for _, p := range l.Figures {
		image := p.Figure.Image
		if image == "" {
			image = "-"
		}
		rows = append(rows, []string{p.Figure.Name, strconv.Itoa(p.Row), num(p.X), vec(p.Box.Center), vec(p.Box.Size), image})
	}
	return renderTable([]string{"Figure", "Row", "X", "Center", "Size", "Image"}, rows)
}

func num(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 3, 32)
}

func vec(v layout.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", num(v.X), num(v.Y), num(v.Z))
}
