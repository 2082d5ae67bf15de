package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/danmuck/msgc/internal/config"
	"github.com/danmuck/msgc/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	flagConfig   string
	flagLogLevel string

	flagSchema        string
	flagOutputDir     string
	flagPrefix        string
	flagPackage       string
	flagRuntimeImport string
	flagTagOffset     int
	flagTagWidth      int
	flagMinPeekSize   int
	flagLengthField   string
	flagMetricsFile   string
)

var rootCmd = &cobra.Command{
	Use:           "msgc",
	Short:         "Compile message schemas into Go codecs",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logging.ConfigureRuntime()
		if flagLogLevel == "" {
			return nil
		}
		lvl, ok := logging.ParseLevel(flagLogLevel)
		if !ok {
			return fmt.Errorf("unknown log level %q", flagLogLevel)
		}
		log.Logger = log.Logger.Level(lvl)
		zerolog.SetGlobalLevel(lvl)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", config.DefaultFile, "config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (trace|debug|info|warn|error|off)")

	rootCmd.AddCommand(generateCmd, checkCmd, describeCmd, initCmd)
}

// compileFlags are the config overrides shared by the commands that compile
// a schema.
func compileFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("compile", pflag.ContinueOnError)
	fs.StringVarP(&flagSchema, "schema", "s", "", "schema file")
	fs.StringVarP(&flagOutputDir, "out", "o", "", "output directory")
	fs.StringVar(&flagPrefix, "prefix", "", "artifact file prefix")
	fs.StringVar(&flagPackage, "package", "", "generated Go package name")
	fs.StringVar(&flagRuntimeImport, "runtime-import", "", "import path of the wire runtime")
	fs.IntVar(&flagTagOffset, "tag-offset", 0, "byte offset of the kind tag")
	fs.IntVar(&flagTagWidth, "tag-width", 1, "width of the kind tag in bytes")
	fs.IntVar(&flagMinPeekSize, "min-peek-size", 4, "bytes required before the kind tag is read")
	fs.StringVar(&flagLengthField, "length-field", "", "common field carrying the encoded length")
	fs.StringVar(&flagMetricsFile, "metrics-file", "", "write compile metrics to this textfile")
	return fs
}

// loadConfig reads the config file when present and applies every flag the
// user set on cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(flagConfig); err == nil {
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return config.Config{}, err
		}
		log.Debug().Str("file", flagConfig).Msg("config loaded")
	} else if !errors.Is(err, os.ErrNotExist) || cmd.Flags().Changed("config") {
		return config.Config{}, fmt.Errorf("config %s: %w", flagConfig, err)
	}

	fs := cmd.Flags()
	if fs.Changed("schema") {
		cfg.Schema = flagSchema
		if !fs.Changed("prefix") {
			cfg.Prefix = ""
		}
		if !fs.Changed("package") {
			cfg.Package = ""
		}
	}
	if fs.Changed("out") {
		cfg.OutputDir = flagOutputDir
	}
	if fs.Changed("prefix") {
		cfg.Prefix = flagPrefix
	}
	if fs.Changed("package") {
		cfg.Package = flagPackage
	}
	if fs.Changed("runtime-import") {
		cfg.RuntimeImport = flagRuntimeImport
	}
	if fs.Changed("tag-offset") {
		cfg.Dispatch.TagOffset = flagTagOffset
	}
	if fs.Changed("tag-width") {
		cfg.Dispatch.TagWidth = flagTagWidth
	}
	if fs.Changed("min-peek-size") {
		cfg.Dispatch.MinPeekSize = flagMinPeekSize
	}
	if fs.Changed("length-field") {
		cfg.Layout.LengthField = flagLengthField
	}
	if fs.Changed("metrics-file") {
		cfg.MetricsFile = flagMetricsFile
	}
	cfg.Normalize()
	return cfg, nil
}
