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
	"context"
	"log/slog"
	"os"

	"github.com/biodivbd/lepiobs/internal/ent/taxapi"
	"github.com/biodivbd/lepiobs/internal/io/inatio"
	"github.com/biodivbd/lepiobs/internal/io/kvio"
	"github.com/biodivbd/lepiobs/internal/io/procio"
	lepiobs "github.com/biodivbd/lepiobs/pkg"
	"github.com/biodivbd/lepiobs/pkg/config"
	"github.com/spf13/cobra"
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extracts observations from a posts CSV file",
	Long: `Reads a CSV file with social-media posts, cleans the text, extracts
observation dates, locations and species identifications, and writes
the enriched observation table as CSV.`,
	Run: func(cmd *cobra.Command, _ []string) {
		flagString := func(name string) string {
			s, err := cmd.Flags().GetString(name)
			if err != nil {
				slog.Error("Cannot get flag", "flag", name, "error", err)
				os.Exit(1)
			}
			return s
		}

		if posts := flagString("posts"); posts != "" {
			opts = append(opts, config.OptPostsFile(posts))
		}
		if gaz := flagString("gazetteer"); gaz != "" {
			opts = append(opts, config.OptGazetteerFile(gaz))
		}
		if ref := flagString("reference"); ref != "" {
			opts = append(opts, config.OptReferenceFile(ref))
		}
		if guide := flagString("photo-guide"); guide != "" {
			opts = append(opts, config.OptPhotoGuideFile(guide))
		}
		if out := flagString("output"); out != "" {
			opts = append(opts, config.OptOutputFile(out))
		}
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			slog.Error("Cannot get flag", "flag", "jobs", "error", err)
			os.Exit(1)
		}
		if jobs > 0 {
			opts = append(opts, config.OptJobsNum(jobs))
		}

		cfg := config.New(opts...)
		if cfg.PostsFile == "" {
			slog.Error("Posts file is not set, use the --posts flag")
			os.Exit(1)
		}
		if cfg.ReferenceFile == "" {
			slog.Error("Reference species file is not set, use the --reference flag")
			os.Exit(1)
		}
		if cfg.GazetteerFile == "" {
			slog.Error("Gazetteer file is not set, use the --gazetteer flag")
			os.Exit(1)
		}

		var lookup taxapi.Lookup
		if cfg.WithTaxonLookup {
			cache, err := kvio.New(cfg.CacheDir)
			if err != nil {
				slog.Error("Cannot create lookup cache", "error", err)
				os.Exit(1)
			}
			if err = cache.Open(); err != nil {
				slog.Error("Cannot open lookup cache", "error", err)
				os.Exit(1)
			}
			defer cache.Close()
			lookup = inatio.New(cfg.TaxonAPIURL, cache)
		}

		p := procio.New(cfg, lookup)
		l := lepiobs.New(cfg)
		if err := l.Process(context.Background(), p); err != nil {
			slog.Error("Cannot process posts", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("posts", "p", "",
		"CSV file with social-media posts")
	processCmd.Flags().StringP("gazetteer", "g", "",
		"tab-separated GeoNames gazetteer file")
	processCmd.Flags().StringP("reference", "r", "",
		"reference species table CSV file")
	processCmd.Flags().StringP("photo-guide", "", "",
		"optional photographic-guide supplement CSV file")
	processCmd.Flags().StringP("output", "o", "",
		"output file for the enriched table")
	processCmd.Flags().IntP("jobs", "j", 0,
		"number of concurrent jobs for species matching")
}
