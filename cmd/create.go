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

	"github.com/faersetl/faersetl/internal/ioload"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create warehouse tables",
		Long: `Create the reports, patients, symptoms and drugs tables in the
warehouse if they do not exist yet. Existing tables and their rows are
kept.

PostgreSQL tables are created with GORM AutoMigrate, SQLite tables
with CREATE TABLE IF NOT EXISTS.

Examples:
  faersetl create
  faersetl create --driver sqlite`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runCreate(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runCreate(cmd *cobra.Command) error {
	ctx, stop := signalContext()
	defer stop()

	l, err := ioload.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer l.Close()

	gn.Info("Creating tables with <em>%s</em> driver...", cfg.Warehouse.Driver)
	if err = l.EnsureSchema(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), gnlib.FormatMessage(`
<em>Warehouse tables are ready.</em>
Run <em>faersetl run</em> to extract and load reports.
`, nil))
	return nil
}
