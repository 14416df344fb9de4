/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"github.com/mitchellh/go-homedir"
	"github.com/rotblauer/polytag/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"log/slog"
	"os"
	"strings"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "polytag",
	Short: "Tag geometries by the polygons that contain them",
	Long: `polytag reads points and shapes and tags each one with
a property of the polygon (from an ordered GeoJSON FeatureCollection) that contains it.

Flags can also be set in a config file (--config, or $HOME/.polytag.yaml)
or by environment, eg. POLYTAG_TAG_PROPERTY=name.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindViper(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.polytag.yaml)")
	rootCmd.PersistentFlags().StringVar(&params.InProcLogConfig.Level, "log.level",
		params.InProcLogConfig.Level, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&params.InProcLogConfig.Format, "log.format",
		params.InProcLogConfig.Format, "Log format: text, json")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		p, err := homedir.Expand(cfgFile)
		cobra.CheckErr(err)
		viper.SetConfigFile(p)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigName(params.ConfigFileName)
	}

	viper.SetEnvPrefix(params.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	case errors.As(err, &notFound):
	default:
		cobra.CheckErr(err)
	}
}

// bindViper sets each flag not given on the command line
// from viper (config file or environment), if viper has it.
func bindViper(cmd *cobra.Command) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !viper.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, viper.GetString(f.Name)); err != nil {
			errs = append(errs, fmt.Errorf("flag --%s from config: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

func setDefaultSlog(cmd *cobra.Command, args []string) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(params.InProcLogConfig.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if params.InProcLogConfig.Format == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h).With("cmd", cmd.Name()))
}
