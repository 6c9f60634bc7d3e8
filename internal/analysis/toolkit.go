// Package analysis implements the built-in examination functions:
// aperture photometry, 1-D profile fits, centroiding, region
// statistics, histograms, and the plot-producing keys. Functions
// receive a freshly sliced data window plus their current parameter
// set and return a textual result; plots land on the session's current
// plot window as a side effect.
package analysis

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"pixelprobe/internal/grid"
	"pixelprobe/internal/logger"
	"pixelprobe/internal/params"
	"pixelprobe/internal/plot"
	"pixelprobe/internal/registry"
)

// Chunk size in pixels used to locate an object center before
// photometry and profile work, as a box half-side.
const centerDelta = 10

// DefaultPlotName is the file the "s" key saves the current plot to
// until the user picks another name.
const DefaultPlotName = "pixelprobe_plot.png"

// Toolkit holds the built-in analysis functions and the plot surfaces
// they draw on. One toolkit per session.
type Toolkit struct {
	plots      *plot.Manager
	log        *log.Logger
	plotName   string
	frameLabel string
	cutoutDir  string
}

// NewToolkit creates a toolkit drawing on the given plot manager.
func NewToolkit(plots *plot.Manager) *Toolkit {
	return &Toolkit{
		plots:     plots,
		log:       logger.NewStyledLogger("Analysis"),
		plotName:  DefaultPlotName,
		cutoutDir: ".",
	}
}

// SetPlotName changes the file the save-figure key writes to.
func (t *Toolkit) SetPlotName(name string) {
	if name == "" {
		t.log.Warn("No plot filename provided, keeping", "name", t.plotName)
		return
	}
	t.plotName = name
}

// PlotName returns the current save-figure target.
func (t *Toolkit) PlotName() string { return t.plotName }

// SetFrameLabel records the name of the displayed frame, used in
// auto-generated plot titles.
func (t *Toolkit) SetFrameLabel(label string) { t.frameLabel = label }

// SetCutoutDir changes where the cutout key writes FITS files.
func (t *Toolkit) SetCutoutDir(dir string) { t.cutoutDir = dir }

// RegisterBuiltins installs the default key bindings on a registry.
func (t *Toolkit) RegisterBuiltins(r *registry.Registry) error {
	builtins := []registry.Entry{
		{Key: 'a', Func: t.AperPhot, Params: AperPhotParams(), Description: "Aperture sum, with radius region_size"},
		{Key: 'j', Func: t.LineFit, Params: LineFitParams(), Description: "1D [Gaussian1D default] line fit"},
		{Key: 'k', Func: t.ColumnFit, Params: ColumnFitParams(), Description: "1D [Gaussian1D default] column fit"},
		{Key: 'm', Func: t.ReportStat, Params: ReportStatParams(), Description: "Square region stats, in [region_size], default is median"},
		{Key: 'x', Func: t.ShowXYCoords, Description: "Return x,y,value of pixel"},
		{Key: 'y', Func: t.ShowXYCoords, Description: "Return x,y,value of pixel"},
		{Key: 'l', Func: t.PlotLine, Params: LinePlotParams(), Description: "Return line plot"},
		{Key: 'c', Func: t.PlotColumn, Params: ColumnPlotParams(), Description: "Return column plot"},
		{Key: 'g', Func: t.CurveOfGrowth, Params: CurveOfGrowthParams(), Description: "Return curve of growth plot"},
		{Key: 'r', Func: t.RadialProfile, Params: RadialProfileParams(), Description: "Return the radial profile plot"},
		{Key: 'h', Func: t.Histogram, Params: HistogramParams(), Description: "Return a histogram in the region around the cursor"},
		{Key: 'e', Func: t.Contour, Params: ContourParams(), Description: "Return a contour plot in a region around the cursor"},
		{Key: 's', Func: t.SaveFigure, Description: "Save current figure to disk as [plot_name]"},
		{Key: 'b', Func: t.GaussCenter, Description: "Return the 2D gauss fit center of the object"},
		{Key: 'w', Func: t.Surface, Params: SurfaceParams(), Description: "Display a surface plot around the cursor location"},
		{Key: 't', Func: t.Cutout, Params: CutoutParams(), Description: "Make a fits image cutout using pointer location"},
	}
	for _, entry := range builtins {
		if err := r.RegisterBuiltin(entry); err != nil {
			return fmt.Errorf("install builtin %q: %w", entry.Key, err)
		}
	}
	return nil
}

// ShowXYCoords reports the cursor coordinate and the pixel value there.
func (t *Toolkit) ShowXYCoords(x, y float64, win *grid.Window, _ *params.Set) (string, error) {
	x0, y0 := win.Origin()
	ix := int(math.Round(x)) - x0
	iy := int(math.Round(y)) - y0
	if ix < 0 || iy < 0 || ix >= win.Dx() || iy >= win.Dy() {
		return "", fmt.Errorf("coordinate (%g, %g) outside the data array", x, y)
	}
	return fmt.Sprintf("%.2f\t%.2f\t%g", x, y, win.At(ix, iy)), nil
}

// SaveFigure writes the current plot window to the configured name.
func (t *Toolkit) SaveFigure(_, _ float64, _ *grid.Window, _ *params.Set) (string, error) {
	if err := t.plots.Current().Save(t.plotName); err != nil {
		return "", err
	}
	return fmt.Sprintf("plot saved to %s", t.plotName), nil
}

// GaussCenter reports the fitted 2-D Gaussian center of the object
// under the cursor.
func (t *Toolkit) GaussCenter(x, y float64, win *grid.Window, _ *params.Set) (string, error) {
	chunk := win.SubWindow(x, y, 2*centerDelta)
	fit, err := FitGaussCenter(chunk)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("xc=%.4f\tyc=%.4f", fit.X, fit.Y), nil
}

// Cutout writes the window under the cursor to a new FITS file.
func (t *Toolkit) Cutout(x, y float64, win *grid.Window, _ *params.Set) (string, error) {
	pattern := fmt.Sprintf("cutout_%d_%d_*.fits", int(math.Round(x)), int(math.Round(y)))
	f, err := os.CreateTemp(t.cutoutDir, pattern)
	if err != nil {
		return "", fmt.Errorf("create cutout file: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)

	if err := grid.WriteFITS(name, win.Data()); err != nil {
		return "", err
	}
	return fmt.Sprintf("Cutout at (%d,%d) saved to %s",
		int(math.Round(x)), int(math.Round(y)), filepath.ToSlash(name)), nil
}

// title builds a plot title: the user's override if set, otherwise the
// frame label and cursor position.
func (t *Toolkit) title(pset *params.Set, x, y float64) string {
	if pset != nil && pset.Has("title") {
		if custom := pset.Str("title"); custom != "" {
			return custom
		}
	}
	return fmt.Sprintf("%s: %d %d", t.frameLabel, int(x), int(y))
}
