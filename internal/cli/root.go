// Package cli implements the xorresilient command line.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/born-ml/xorresilient/internal/config"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "v0.1.0-dev"

// NewRootCommand builds the command tree. Output is written to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	v := viper.New()
	var logCloser io.Closer

	root := &cobra.Command{
		Use:   "xorresilient",
		Short: "compare activation functions on XOR with resilient propagation",

		// SilenceUsage is an option to silence usage when an error occurs.
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if dotenv := v.GetString("dotenv"); dotenv != "" {
				if err := godotenv.Load(dotenv); err != nil && !os.IsNotExist(err) {
					return err
				}
			}
			closer, err := setupLogging(log.StandardLogger(), v.GetBool("debug"), v.GetString("log-file"), v.GetBool("no-color"))
			if err != nil {
				return err
			}
			logCloser = closer
			if v.GetBool("no-color") {
				color.NoColor = true
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml)")
	flags.Bool("debug", false, "log every training epoch")
	flags.String("log-file", "", "also write json logs to this file, rotated")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("dotenv", ".env", "load environment variables from this file if it exists")

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(
		newRunCommand(v),
		newActivationsCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		log.WithError(err).Fatal("cannot execute command")
	}
}

func setupLogging(logger *log.Logger, debug bool, logFile string, noColor bool) (io.Closer, error) {
	logger.SetFormatter(&prefixed.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
		DisableColors:   noColor,
	})
	logger.SetOutput(os.Stderr)
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	if logFile == "" {
		return nil, nil
	}
	writer := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	logger.AddHook(lfshook.NewHook(
		lfshook.WriterMap{
			log.DebugLevel: writer,
			log.InfoLevel:  writer,
			log.WarnLevel:  writer,
			log.ErrorLevel: writer,
			log.FatalLevel: writer,
		},
		&log.JSONFormatter{},
	))
	return writer, nil
}
