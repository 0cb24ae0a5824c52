// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/poiesic/caregap"
	"github.com/poiesic/caregap/ai"
	"github.com/poiesic/caregap/ai/openai"
	"github.com/poiesic/caregap/analysis"
	"github.com/poiesic/caregap/core"
	"github.com/poiesic/caregap/dataset"
	"github.com/poiesic/caregap/index"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "caregap",
		Usage: "Retrieval and gap analysis over healthcare facility datasets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:     "csv",
				Aliases:  []string{"c"},
				Usage:    "Path to the facility dataset CSV",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "embeddinggemma",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Semantic search over facility records",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   5,
					},
				},
			},
			{
				Name:   "gaps",
				Usage:  "Detect medical deserts for a specialty and/or region",
				Action: gapsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "specialty",
						Usage: "Medical specialty to check coverage for",
					},
					&cli.StringFlag{
						Name:  "region",
						Usage: "Geographic region to analyze",
					},
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a facility's claims",
				ArgsUsage: "<facility name>",
				Action:    validateCommand,
			},
			{
				Name:   "filter",
				Usage:  "List facilities matching a region or specialty",
				Action: filterCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "region",
						Usage: "Region to filter by",
					},
					&cli.StringFlag{
						Name:  "specialty",
						Usage: "Specialty to filter by",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", c.String("log-level"))
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// buildSystem loads the dataset and builds the index, reporting
// embedding progress on stderr.
func buildSystem(c *cli.Context) (*caregap.System, error) {
	config := ai.DefaultConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	embedder, err := openai.NewEmbedder(config)
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = newProgressBar(total, "Embedding facility records")
		}
		bar.Set(done)
	}

	system, err := caregap.New(c.Context, c.String("csv"), embedder,
		caregap.WithIndexOptions(index.WithProgress(progress)))
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	return system, err
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("records"),
		progressbar.OptionShowCount(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
	)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("search requires a query argument")
	}
	query := strings.Join(c.Args().Slice(), " ")

	system, err := buildSystem(c)
	if err != nil {
		return err
	}

	results, err := system.Search(c.Context, query, c.Int("top-k"))
	if err != nil {
		return err
	}
	return printJSON(results)
}

// Gap detection, validation, and filtering operate on the store alone;
// no index build, no embedding service needed.
func gapsCommand(c *cli.Context) error {
	store, err := dataset.Load(c.String("csv"))
	if err != nil {
		return err
	}
	detector, err := analysis.NewGapDetector(store)
	if err != nil {
		return err
	}
	return printJSON(detector.Detect(c.String("specialty"), c.String("region")))
}

func validateCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("validate requires a facility name argument")
	}
	name := strings.Join(c.Args().Slice(), " ")

	store, err := dataset.Load(c.String("csv"))
	if err != nil {
		return err
	}
	validator, err := analysis.NewValidator(store)
	if err != nil {
		return err
	}

	report, err := validator.Validate(name)
	if errors.Is(err, core.ErrFacilityNotFound) {
		return printJSON(map[string]string{"error": "Facility not found"})
	}
	if err != nil {
		return err
	}
	return printJSON(report)
}

func filterCommand(c *cli.Context) error {
	region := c.String("region")
	specialty := c.String("specialty")
	if (region == "") == (specialty == "") {
		return fmt.Errorf("filter requires exactly one of --region or --specialty")
	}

	store, err := dataset.Load(c.String("csv"))
	if err != nil {
		return err
	}

	var records []core.Record
	if region != "" {
		records = store.FilterByRegion(region)
	} else {
		records = store.FilterBySpecialty(specialty)
	}

	rows := make([]map[string]string, len(records))
	for i, rec := range records {
		rows[i] = rec.Fields
	}
	return printJSON(rows)
}
