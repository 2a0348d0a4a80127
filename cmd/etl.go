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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/faersetl/faersetl/internal/iopipeline"
	"github.com/faersetl/faersetl/pkg/etl"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
)

// signalContext returns a context cancelled by Ctrl-C.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// phaseCmd builds a command that runs pipeline phases with the
// loaded config.
func phaseCmd(
	use, short, long, done string,
	run func(etl.Pipeline, context.Context) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			if err := run(iopipeline.New(cfg), ctx); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), gnlib.FormatMessage(done, nil))
			return nil
		},
	}
}

func getExtractCmd() *cobra.Command {
	return phaseCmd(
		"extract",
		"Extract reports from openFDA and stage them",
		`Check that the openFDA API answers, fetch reports page by page
following the "next" links, and stage them as raw CSV.

Examples:
  faersetl extract
  faersetl extract -n 1000 -l 100`,
		"\n<em>Raw reports are staged.</em>\nRun <em>faersetl transform</em> next.\n",
		etl.Pipeline.RunExtract,
	)
}

func getTransformCmd() *cobra.Command {
	return phaseCmd(
		"transform",
		"Normalize staged reports into four tables",
		`Read the raw stage, normalize reports into reports, patients,
symptoms and drugs tables and stage the tables as CSV.

A malformed report stops the transform, nothing is staged then.`,
		"\n<em>Tables are staged.</em>\nRun <em>faersetl load</em> next.\n",
		etl.Pipeline.RunTransform,
	)
}

func getLoadCmd() *cobra.Command {
	return phaseCmd(
		"load",
		"Load staged tables into the warehouse",
		`Replace the content of the warehouse tables with the staged tables.
Missing tables are created. Rows the warehouse cannot accept are
skipped and reported in the log.

Examples:
  faersetl load
  faersetl load --driver sqlite`,
		"\n<em>Warehouse is loaded.</em>\n",
		etl.Pipeline.RunLoad,
	)
}

func getRunCmd() *cobra.Command {
	return phaseCmd(
		"run",
		"Run extract, transform and load",
		`Run all phases of the pipeline:
  1. check the openFDA API
  2. extract and stage raw reports
  3. normalize staged reports
  4. stage the four tables
  5. load the warehouse

Examples:
  faersetl run
  faersetl run -n 5000 --backend s3 --driver postgres`,
		"\n<em>Pipeline is complete.</em>\n",
		etl.Pipeline.Run,
	)
}
