/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/faersetl/faersetl/internal/iofs"
	"github.com/faersetl/faersetl/internal/iologger"
	app "github.com/faersetl/faersetl/pkg"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/gnames/gn"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "faersetl",
		Short:   "Loads FDA adverse event reports into a warehouse",
		Long: `faersetl extracts drug adverse event reports from the openFDA API,
normalizes them into reports, patients, symptoms and drugs tables,
stages the tables as CSV files in object storage and loads them into
a PostgreSQL or SQLite warehouse.

Settings are read from ~/.config/faersetl/config.yaml, FAERSETL_*
environment variables and command line flags.

Examples:
  faersetl run
  faersetl run -n 5000 -s 'occurcountry:"US"'
  faersetl extract --backend s3
  faersetl load --driver sqlite`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "faersetl version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for faersetl")
	addFlags(rootCmd)

	rootCmd.AddCommand(
		getCreateCmd(),
		getExtractCmd(),
		getTransformCmd(),
		getLoadCmd(),
		getRunCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	var err error
	homeDir, err = homedir.Dir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Logging with defaults until the config is read.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	opts = append(opts, config.OptHomeDir(homeDir))
	opts = append(opts, flagOptions(cmd)...)
	cfg.Update(opts)

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"stage_backend", cfg.Stage.Backend,
		"warehouse_driver", cfg.Warehouse.Driver,
	)
	return nil
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// envKeys lists config keys that can be set with environment variables.
// They match the fields of config.ToOptions().
var envKeys = []string{
	"extract.base_url",
	"extract.search",
	"extract.page_size",
	"extract.target_count",
	"extract.rate_limit",
	"extract.timeout",
	"extract.api_key",

	"stage.backend",
	"stage.bucket",
	"stage.region",
	"stage.root",
	"stage.access_key",
	"stage.secret_key",
	"stage.credentials_file",
	"stage.raw_key",
	"stage.reports_key",
	"stage.patients_key",
	"stage.symptoms_key",
	"stage.drugs_key",

	"warehouse.driver",
	"warehouse.host",
	"warehouse.port",
	"warehouse.user",
	"warehouse.password",
	"warehouse.database",
	"warehouse.ssl_mode",
	"warehouse.sqlite_path",
	"warehouse.reports_table",
	"warehouse.patients_table",
	"warehouse.symptoms_table",
	"warehouse.drugs_table",

	"log.level",
	"log.format",
	"log.destination",
}

// envName converts a config key to its environment variable,
// e.g. "stage.raw_key" to "FAERSETL_STAGE_RAW_KEY".
func envName(key string) string {
	key = strings.ReplaceAll(key, ".", "_")
	return strings.ToUpper(config.AppName + "_" + key)
}

func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix(strings.ToUpper(config.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		v.BindEnv(key, envName(key))
	}
	v.AutomaticEnv()
}
