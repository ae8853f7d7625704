package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/joshuapare/marckit/internal/logger"
	"github.com/joshuapare/marckit/pkg/types"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	logFile string
	logJSON bool

	// Format overrides shared by commands that read or write records
	inFormat  string
	outFormat string
	encoding  string
)

var flushLogs = func() {}

var rootCmd = &cobra.Command{
	Use:   "marcctl",
	Short: "Clean, convert and inspect bibliographic record files",
	Long: `marcctl runs declarative cleanup pipelines over catalog record files
and converts between ISO 2709 (.mrc), mnemonic text (.mrk) and MARCXML (.xml).
A trailing .xz on any file name reads or writes an xz-compressed stream.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		done, err := logger.Init(logOptions())
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		flushLogs = done
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		flushLogs()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logs")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON lines")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding", types.EncodingLatin1,
		"Character set of records not declared as UTF-8 (ISO-8859-1, Windows-1252, UTF-8)")
}

func logOptions() logger.Options {
	opts := logger.Options{
		Enabled: !quiet || logFile != "",
		Level:   zapcore.WarnLevel,
		JSON:    logJSON,
		Path:    logFile,
	}
	if verbose {
		opts.Level = zapcore.DebugLevel
	}
	return opts
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addFormatFlags registers --in-format and --out-format on cmd.
func addFormatFlags(cmd *cobra.Command, in, out bool) {
	if in {
		cmd.Flags().StringVar(&inFormat, "in-format", "", "Input format (iso2709, mrk, xml); default from file name")
	}
	if out {
		cmd.Flags().StringVar(&outFormat, "out-format", "", "Output format (iso2709, mrk, xml); default from file name")
	}
}

func readOptions() (types.ReadOptions, error) {
	opts := types.DefaultReadOptions()
	opts.Encoding = encoding
	if inFormat != "" {
		f, err := types.ParseFormat(inFormat)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	}
	return opts, nil
}

func writeOptions() (types.WriteOptions, error) {
	opts := types.DefaultWriteOptions()
	if outFormat != "" {
		f, err := types.ParseFormat(outFormat)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	}
	return opts, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
