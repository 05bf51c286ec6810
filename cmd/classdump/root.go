package main

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFiles []string
	logLevel    string
	format      string
)

var rootCmd = &cobra.Command{
	Use:   "classdump <file>",
	Short: "Decode a .class file and print its resolved type definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&logLevel, "level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", []string{}, "config file(s) - multiple files are merged with last specified file having highest priority")
	rootCmd.Flags().StringVarP(&format, "format", "f", "line", "output format (json, line)")
}

func initConfig() {
	var ll slog.Level
	if err := (&ll).UnmarshalText([]byte(logLevel)); err != nil {
		ll = slog.LevelInfo
	}
	l := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: ll}))
	slog.SetDefault(l)

	if len(configFiles) > 0 {
		viper.SetConfigFile(configFiles[0])
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc")
		viper.SetConfigType("yaml")
		viper.SetConfigName("classdump")
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		l.With("config", viper.ConfigFileUsed()).Debug("using config file(s)")
	} else {
		l.With("error", err).Debug("no config file found, using defaults and environment")
	}
	if len(configFiles) > 1 {
		for _, file := range configFiles[1:] {
			configBytes, err := os.ReadFile(file)
			if err != nil {
				l.With("error", err, "file", file).Warn("failed to read config file")
				continue
			}
			if err := viper.MergeConfig(bytes.NewReader(configBytes)); err != nil {
				l.With("error", err, "file", file).Warn("failed to merge config file")
			}
		}
	}

	if strings.EqualFold(viper.GetString("format"), "json") && format == "line" {
		format = "json"
	}
}
