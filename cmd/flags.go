package cmd

import (
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/spf13/cobra"
)

// addFlags adds flags that override config settings of every command.
func addFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("search", "s", "", "openFDA search expression")
	pf.IntP("limit", "l", 0, "number of records per API page")
	pf.IntP("count", "n", 0, "number of records to extract (0 extracts nothing)")
	pf.String("backend", "", "stage backend: file, s3 or gcs")
	pf.String("driver", "", "warehouse driver: postgres or sqlite")
}

// flagOptions converts flags set by the user to config options.
// Flags left at their defaults do not change the config.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("search") {
		s, _ := flags.GetString("search")
		res = append(res, config.OptExtractSearch(s))
	}
	if flags.Changed("limit") {
		i, _ := flags.GetInt("limit")
		res = append(res, config.OptExtractPageSize(i))
	}
	if flags.Changed("count") {
		i, _ := flags.GetInt("count")
		res = append(res, config.OptExtractTargetCount(i))
	}
	if flags.Changed("backend") {
		s, _ := flags.GetString("backend")
		res = append(res, config.OptStageBackend(s))
	}
	if flags.Changed("driver") {
		s, _ := flags.GetString("driver")
		res = append(res, config.OptWarehouseDriver(s))
	}
	return res
}
