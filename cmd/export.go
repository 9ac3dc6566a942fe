// Copyright © 2020 Dmitry Mozzherin <dmozzherin@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"

	"github.com/biodivbd/lepiobs/internal/io/pgio"
	lepiobs "github.com/biodivbd/lepiobs/pkg"
	"github.com/biodivbd/lepiobs/pkg/config"
	"github.com/biodivbd/lepiobs/pkg/ent/record"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Loads an enriched observation table into PostgreSQL",
	Long: `Reads the enriched observation CSV produced by the process command
and bulk-loads it into a PostgreSQL observations table, recreating the
table on every run.`,
	Run: func(cmd *cobra.Command, _ []string) {
		input, err := cmd.Flags().GetString("input")
		if err != nil {
			slog.Error("Cannot get flag", "flag", "input", "error", err)
			os.Exit(1)
		}
		if input == "" {
			slog.Error("Input file is not set, use the --input flag")
			os.Exit(1)
		}

		cfg := config.New(opts...)

		recs, err := readObservations(input)
		if err != nil {
			slog.Error("Cannot read observations", "error", err, "path", input)
			os.Exit(1)
		}

		e, err := pgio.New(cfg)
		if err != nil {
			slog.Error("Cannot connect to PostgreSQL", "error", err)
			os.Exit(1)
		}

		l := lepiobs.New(cfg)
		if err = l.Export(e, recs); err != nil {
			slog.Error("Cannot export observations", "error", err)
			os.Exit(1)
		}
	},
}

// readObservations restores observation records from an enriched CSV
// written by the process command.
func readObservations(path string) ([]record.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// skip header
	if _, err = r.Read(); err != nil {
		return nil, err
	}

	var res []record.Observation
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, err := record.FromRow(row)
		if err != nil {
			slog.Warn("Skipping bad row", "error", err)
			continue
		}
		res = append(res, rec)
	}
	return res, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("input", "i", "",
		"enriched observation CSV file to load")
}
