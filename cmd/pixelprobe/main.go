// Package main provides the pixelprobe CLI entry point: interactive
// examination of a FITS image with events read from stdin, plus key
// listing and version commands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pixelprobe/internal/config"
	"pixelprobe/internal/help"
	"pixelprobe/internal/logger"
	"pixelprobe/internal/output"
	"pixelprobe/internal/session"
	"pixelprobe/internal/version"
	"pixelprobe/internal/viewer"
)

var (
	logLevel  string
	logFile   string
	testMode  bool
	plotName  string
	cutoutDir string
	resultLog string
	resultLvl string
	setFlags  []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pixelprobe",
	Short: "pixelprobe - interactive astronomical image examination",
	Long: `pixelprobe examines astronomical images interactively: cursor events
are dispatched by key to analysis functions such as aperture photometry,
profile fits, region statistics, and plots.`,
}

// examineCmd runs the examination loop on a FITS file, reading
// "x y key" event lines from stdin.
var examineCmd = &cobra.Command{
	Use:   "examine <image.fits>",
	Short: "Examine a FITS image with events from stdin",
	Long: `Load the primary HDU of a FITS image and run the examination loop.
Events are read from stdin as "x y key" lines; results are written to
stdout. Press 'q' (or close stdin) to quit, '?' lists the keys.`,
	Args: cobra.ExactArgs(1),
	RunE: runExamine,
}

// keysCmd lists the built-in key bindings.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the analysis key bindings",
	Run: func(_ *cobra.Command, _ []string) {
		sess := session.New()
		defer func() { _ = sess.Close() }()
		output.NewPrinter().Printf("%s", help.Render(sess.Keys()))
	},
}

// paramsCmd prints a function's parameter set as YAML.
var paramsCmd = &cobra.Command{
	Use:   "params <function>",
	Short: "Show the parameter set of an analysis function as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		sess := session.New()
		defer func() { _ = sess.Close() }()
		data, err := sess.ExportParams(args[0])
		if err != nil {
			return err
		}
		output.NewPrinter().Printf("%s", data)
		return nil
	},
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run with plain, timestamp-free logging")

	examineCmd.Flags().StringVar(&plotName, "plot-name", "", "File the 's' key saves the current plot to")
	examineCmd.Flags().StringVar(&cutoutDir, "cutout-dir", "", "Directory the 't' key writes FITS cutouts to")
	examineCmd.Flags().StringVar(&resultLog, "result-log", "", "Append examination results to this file")
	examineCmd.Flags().StringVar(&resultLvl, "result-log-level", "", "Minimum level kept in the result log (info|error)")
	examineCmd.Flags().StringArrayVar(&setFlags, "set", nil, "Override a parameter, e.g. --set aper_phot.radius=8")

	for _, name := range []string{"log-level", "log-file", "test-mode"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
			os.Exit(1)
		}
	}
	for _, name := range []string{"plot-name", "cutout-dir", "result-log", "result-log-level"} {
		if err := viper.BindPFlag(name, examineCmd.Flags().Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(examineCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := config.ReadConfigFile(viper.GetViper()); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		os.Exit(1)
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Configure(logLevel, logFile, testMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runExamine(_ *cobra.Command, args []string) error {
	imagePath := args[0]
	logger.Info("Starting pixelprobe", "version", version.GetVersion(), "image", imagePath)

	settings := config.FromViper(viper.GetViper())
	for _, kv := range setFlags {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return fmt.Errorf("bad --set %q: want function.option=value", kv)
		}
		settings.Options[key] = value
	}

	sess := session.New()
	defer func() { _ = sess.Close() }()

	if err := settings.Apply(sess); err != nil {
		return err
	}
	if err := sess.LoadFITS(imagePath); err != nil {
		return err
	}

	printer := output.NewPrinter()
	printer.Info(fmt.Sprintf("examining %s, events from stdin as \"x y key\"", imagePath))

	adapter := viewer.NewReaderAdapter(os.Stdin, os.Stdout, filepath.Base(imagePath))
	if err := sess.Run(adapter); err != nil {
		return err
	}
	printer.Info("examination finished")
	return nil
}
