package analysis

import (
	"pixelprobe/internal/params"
	"pixelprobe/pkg/probetypes"
)

// Default parameter sets for the built-in analysis functions. Each set
// is created fresh per session so edits never leak between sessions.
// Empty title strings mean "derive a title from the frame and cursor".

// AperPhotParams returns the aperture photometry defaults.
func AperPhotParams() *params.Set {
	return params.NewSet("aper_phot",
		params.Option{Name: "center", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "Center the object location using a 2d gaussian fit"},
		params.Option{Name: "width", Kind: probetypes.KindInt, Value: probetypes.IntValue(5),
			Description: "Width of sky annulus in pixels"},
		params.Option{Name: "subsky", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "Subtract a sky background?"},
		params.Option{Name: "skyrad", Kind: probetypes.KindInt, Value: probetypes.IntValue(15),
			Description: "Distance to start sky annulus in pixels"},
		params.Option{Name: "radius", Kind: probetypes.KindInt, Value: probetypes.IntValue(5),
			Description: "Radius of aperture for star flux"},
		params.Option{Name: "zmag", Kind: probetypes.KindFloat, Value: probetypes.FloatValue(25),
			Description: "zeropoint for the magnitude calculation"},
	)
}

// ReportStatParams returns the region statistics defaults.
func ReportStatParams() *params.Set {
	return params.NewSet("report_stat",
		params.Option{Name: "stat", Kind: probetypes.KindEnum, Value: probetypes.EnumValue("median"),
			Choices:     []string{"mean", "median", "stddev", "variance", "min", "max", "sum", "describe"},
			Description: "Statistic to compute over the region"},
		params.Option{Name: "region_size", Kind: probetypes.KindInt, Value: probetypes.IntValue(5),
			Description: "region size in pixels to use"},
	).WithRegionOption("region_size")
}

// RadialProfileParams returns the radial profile defaults.
func RadialProfileParams() *params.Set {
	return params.NewSet("radial_profile",
		params.Option{Name: "title", Kind: probetypes.KindString, Value: probetypes.StringValue(""),
			Description: "Title of the plot"},
		params.Option{Name: "xlabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Radius"),
			Description: "The string for the xaxis label"},
		params.Option{Name: "ylabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Flux"),
			Description: "The string for the yaxis label"},
		params.Option{Name: "pixels", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "Plot all pixels at each radius? (false bins the data)"},
		params.Option{Name: "center", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "Solve for center using 2d Gaussian?"},
		params.Option{Name: "background", Kind: probetypes.KindBool, Value: probetypes.BoolValue(false),
			Description: "Subtract background?"},
		params.Option{Name: "skyrad", Kind: probetypes.KindFloat, Value: probetypes.FloatValue(10),
			Description: "Background inner radius in pixels, from center of object"},
		params.Option{Name: "width", Kind: probetypes.KindFloat, Value: probetypes.FloatValue(5),
			Description: "Background annulus width in pixels"},
		params.Option{Name: "rplot", Kind: probetypes.KindFloat, Value: probetypes.FloatValue(8),
			Description: "Plotting radius in pixels"},
		params.Option{Name: "pointmode", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "plot points instead of lines?"},
		params.Option{Name: "getdata", Kind: probetypes.KindBool, Value: probetypes.BoolValue(false),
			Description: "report the plotted data values"},
	)
}

// CurveOfGrowthParams returns the curve of growth defaults.
func CurveOfGrowthParams() *params.Set {
	return params.NewSet("curve_of_growth",
		params.Option{Name: "title", Kind: probetypes.KindString, Value: probetypes.StringValue(""),
			Description: "Title of the plot"},
		params.Option{Name: "xlabel", Kind: probetypes.KindString, Value: probetypes.StringValue("radius"),
			Description: "The string for the xaxis label"},
		params.Option{Name: "ylabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Encircled Flux"),
			Description: "The string for the yaxis label"},
		params.Option{Name: "center", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "Solve for center using 2d Gaussian?"},
		params.Option{Name: "background", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "Fit and subtract background?"},
		params.Option{Name: "buffer", Kind: probetypes.KindFloat, Value: probetypes.FloatValue(25),
			Description: "Background inner radius in pixels, from center of star"},
		params.Option{Name: "width", Kind: probetypes.KindFloat, Value: probetypes.FloatValue(5),
			Description: "Background annulus width in pixels"},
		params.Option{Name: "rplot", Kind: probetypes.KindFloat, Value: probetypes.FloatValue(8),
			Description: "Plotting radius in pixels"},
		params.Option{Name: "getdata", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "report the plotted data values"},
	)
}

// SurfaceParams returns the surface plot defaults.
func SurfaceParams() *params.Set {
	return params.NewSet("surface",
		params.Option{Name: "title", Kind: probetypes.KindString, Value: probetypes.StringValue(""),
			Description: "Title of the plot"},
		params.Option{Name: "ncolumns", Kind: probetypes.KindInt, Value: probetypes.IntValue(21),
			Description: "Side of the region used for the surface"},
		params.Option{Name: "stride", Kind: probetypes.KindInt, Value: probetypes.IntValue(1),
			Description: "step size, higher vals will have less detail"},
	).WithRegionOption("ncolumns")
}

// LineFitParams returns the 1-D line fit defaults.
func LineFitParams() *params.Set {
	return params.NewSet("line_fit",
		params.Option{Name: "func", Kind: probetypes.KindEnum, Value: probetypes.EnumValue("Gaussian1D"),
			Choices:     []string{"Gaussian1D", "Moffat1D", "Polynomial1D"},
			Description: "function for fitting"},
		params.Option{Name: "title", Kind: probetypes.KindString, Value: probetypes.StringValue(""),
			Description: "Title of the plot"},
		params.Option{Name: "xlabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Column"),
			Description: "The string for the xaxis label"},
		params.Option{Name: "ylabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Flux"),
			Description: "The string for the yaxis label"},
		params.Option{Name: "order", Kind: probetypes.KindInt, Value: probetypes.IntValue(1),
			Description: "Polynomial order to fit, 1=line"},
		params.Option{Name: "rplot", Kind: probetypes.KindInt, Value: probetypes.IntValue(15),
			Description: "Plotting radius in pixels"},
		params.Option{Name: "pointmode", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "plot points instead of lines?"},
		params.Option{Name: "center", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "Recenter around the local max"},
	)
}

// ColumnFitParams returns the 1-D column fit defaults.
func ColumnFitParams() *params.Set {
	return params.NewSet("column_fit",
		params.Option{Name: "func", Kind: probetypes.KindEnum, Value: probetypes.EnumValue("Gaussian1D"),
			Choices:     []string{"Gaussian1D", "Moffat1D", "Polynomial1D"},
			Description: "function for fitting"},
		params.Option{Name: "title", Kind: probetypes.KindString, Value: probetypes.StringValue(""),
			Description: "Title of the plot"},
		params.Option{Name: "xlabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Line"),
			Description: "The string for the xaxis label"},
		params.Option{Name: "ylabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Flux"),
			Description: "The string for the yaxis label"},
		params.Option{Name: "order", Kind: probetypes.KindInt, Value: probetypes.IntValue(1),
			Description: "Polynomial order to fit, 1=line"},
		params.Option{Name: "rplot", Kind: probetypes.KindInt, Value: probetypes.IntValue(20),
			Description: "Plotting radius in pixels"},
		params.Option{Name: "pointmode", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "plot points instead of lines?"},
		params.Option{Name: "center", Kind: probetypes.KindBool, Value: probetypes.BoolValue(true),
			Description: "Recenter around the local max"},
	)
}

// ContourParams returns the contour plot defaults.
func ContourParams() *params.Set {
	return params.NewSet("contour",
		params.Option{Name: "title", Kind: probetypes.KindString, Value: probetypes.StringValue(""),
			Description: "Title of the plot"},
		params.Option{Name: "ncolumns", Kind: probetypes.KindInt, Value: probetypes.IntValue(15),
			Description: "Side of the contoured region in pixels"},
		params.Option{Name: "ncontours", Kind: probetypes.KindInt, Value: probetypes.IntValue(8),
			Description: "Number of contour levels to be drawn"},
	).WithRegionOption("ncolumns")
}

// HistogramParams returns the region histogram defaults.
func HistogramParams() *params.Set {
	return params.NewSet("histogram",
		params.Option{Name: "title", Kind: probetypes.KindString, Value: probetypes.StringValue(""),
			Description: "Title of the plot"},
		params.Option{Name: "xlabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Flux (bin)"),
			Description: "The string for the xaxis label"},
		params.Option{Name: "ylabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Count"),
			Description: "The string for the yaxis label"},
		params.Option{Name: "ncolumns", Kind: probetypes.KindInt, Value: probetypes.IntValue(21),
			Description: "Side of the region sampled for the histogram"},
		params.Option{Name: "nbins", Kind: probetypes.KindInt, Value: probetypes.IntValue(100),
			Description: "Number of bins"},
		params.Option{Name: "z1", Kind: probetypes.KindFloat, Value: probetypes.FloatValue(0),
			Description: "Minimum histogram intensity (0 = data minimum)"},
		params.Option{Name: "z2", Kind: probetypes.KindFloat, Value: probetypes.FloatValue(0),
			Description: "Maximum histogram intensity (0 = data maximum)"},
	).WithRegionOption("ncolumns")
}

// LinePlotParams returns the raw line plot defaults.
func LinePlotParams() *params.Set {
	return params.NewSet("line_plot",
		params.Option{Name: "title", Kind: probetypes.KindString, Value: probetypes.StringValue(""),
			Description: "Title of the plot"},
		params.Option{Name: "xlabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Column"),
			Description: "The string for the xaxis label"},
		params.Option{Name: "ylabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Pixel Value"),
			Description: "The string for the yaxis label"},
		params.Option{Name: "pointmode", Kind: probetypes.KindBool, Value: probetypes.BoolValue(false),
			Description: "plot points instead of lines?"},
	)
}

// ColumnPlotParams returns the raw column plot defaults.
func ColumnPlotParams() *params.Set {
	return params.NewSet("column_plot",
		params.Option{Name: "title", Kind: probetypes.KindString, Value: probetypes.StringValue(""),
			Description: "Title of the plot"},
		params.Option{Name: "xlabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Line"),
			Description: "The string for the xaxis label"},
		params.Option{Name: "ylabel", Kind: probetypes.KindString, Value: probetypes.StringValue("Pixel Value"),
			Description: "The string for the yaxis label"},
		params.Option{Name: "pointmode", Kind: probetypes.KindBool, Value: probetypes.BoolValue(false),
			Description: "plot points instead of lines?"},
	)
}

// CutoutParams returns the cutout defaults.
func CutoutParams() *params.Set {
	return params.NewSet("cutout",
		params.Option{Name: "size", Kind: probetypes.KindInt, Value: probetypes.IntValue(20),
			Description: "side of the image cutout in pixels"},
	).WithRegionOption("size")
}
