// Copyright 2026 Forgeline Systems
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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/forgeline/partmatch"
	"github.com/forgeline/partmatch/ai"
	"github.com/forgeline/partmatch/config"
	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/pipeline"
	"github.com/forgeline/partmatch/reembed"
)

func main() {
	app := &cli.App{
		Name:  "partmatch",
		Usage: "Purchase-order catalog search and match engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the catalog database directory",
				Value:   "partmatch-db",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "OpenAI-compatible service host URL",
				Value: "http://localhost:11434/v1",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "load",
				Usage:     "Replace the catalog with rows from a JSON file",
				ArgsUsage: "<catalog.json>",
				Action:    loadCommand,
			},
			{
				Name:   "stats",
				Usage:  "Print catalog statistics",
				Action: statsCommand,
			},
			{
				Name:   "export",
				Usage:  "Write the catalog back out as JSON rows",
				Action: exportCommand,
			},
			{
				Name:      "search",
				Usage:     "Print the fused candidate ranking for one requirement",
				ArgsUsage: "<requirement text>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "material", Usage: "Material grade code (e.g. 4140, 6061-T6)"},
					&cli.StringFlag{Name: "form", Usage: "Stock form filter (bar, sheet, tube, ...)"},
				},
			},
			{
				Name:      "match",
				Usage:     "Resolve one requirement to a match decision",
				ArgsUsage: "<requirement text>",
				Action:    matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "material", Usage: "Material grade code"},
					&cli.StringFlag{Name: "form", Usage: "Stock form filter"},
					&cli.StringFlag{Name: "urgency", Usage: "Urgency hint for substitutions"},
				},
			},
			{
				Name:      "run",
				Usage:     "Run a full purchase-order document through the pipeline",
				ArgsUsage: "<order.txt>",
				Action:    runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "job-id", Usage: "Job identifier (generated when empty)"},
					&cli.BoolFlag{Name: "progress", Usage: "Print progress events to stderr"},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate description embeddings for all parts",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of parts to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N parts",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openService builds a Service from the global flags, overlaying the YAML
// configuration file when one is given.
func openService(c *cli.Context) (*partmatch.Service, error) {
	opts := []partmatch.ServiceOption{
		partmatch.WithAIConfig(ai.NewConfig(ai.WithHost(c.String("host")))),
	}

	if path := c.String("config"); path != "" {
		file, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}

		searchCfg, err := file.SearchConfig()
		if err != nil {
			return nil, fmt.Errorf("invalid matching configuration: %w", err)
		}
		opts = append(opts, partmatch.WithSearchConfig(searchCfg))

		if table := file.SubstitutionTable(); table != nil {
			opts = append(opts, partmatch.WithSubstitutions(table))
		}

		aiOpts := file.AIOptions()
		aiOpts = append([]ai.ConfigOption{ai.WithHost(c.String("host"))}, aiOpts...)
		opts[0] = partmatch.WithAIConfig(ai.NewConfig(aiOpts...))
	}

	return partmatch.NewService(c.String("db"), opts...)
}

func loadCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one catalog file argument")
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	var rows []core.CatalogRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}

	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	report, err := service.LoadCatalog(context.Background(), rows)
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %d of %d rows (%d skipped, %d embedded)\n",
		report.LoadedParts, report.TotalRows, report.SkippedRows, report.EmbeddedParts)
	for _, loadErr := range report.Errors {
		fmt.Fprintf(os.Stderr, "  skipped: %v\n", loadErr)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	stats, err := service.CatalogStats()
	if err != nil {
		return err
	}

	fmt.Printf("Total parts:     %d\n", stats.TotalParts)
	fmt.Printf("Materials:       %d (%s)\n", len(stats.Materials), strings.Join(stats.Materials, ", "))
	fmt.Printf("Forms:           %d (%s)\n", len(stats.Forms), strings.Join(stats.Forms, ", "))
	fmt.Printf("Embedded parts:  %d\n", stats.EmbeddedParts)
	fmt.Printf("Inventory value: %s\n", stats.TotalInventoryValue.StringFixed(2))
	return nil
}

func exportCommand(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	var rows []core.CatalogRow
	err = service.Repository().ForEachPart(context.Background(), func(part *core.PartRecord) error {
		rows = append(rows, *core.RowFromPart(part))
		return nil
	})
	if err != nil {
		return err
	}

	return printJSON(rows)
}

func requirementFromFlags(c *cli.Context) (core.Requirement, error) {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return core.Requirement{}, fmt.Errorf("requirement text is required")
	}
	return core.Requirement{
		Id:       core.IDFromContent(text),
		RawText:  text,
		Material: c.String("material"),
		Form:     c.String("form"),
		Urgency:  c.String("urgency"),
	}, nil
}

func searchCommand(c *cli.Context) error {
	req, err := requirementFromFlags(c)
	if err != nil {
		return err
	}

	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	fused, err := service.Search(context.Background(), req)
	if err != nil {
		return err
	}

	return printJSON(fused)
}

func matchCommand(c *cli.Context) error {
	req, err := requirementFromFlags(c)
	if err != nil {
		return err
	}

	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	result, err := service.Match(context.Background(), req)
	if err != nil {
		return err
	}

	return printJSON(result)
}

func runCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one order file argument")
	}

	document, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read order file: %w", err)
	}

	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	var pipelineOpts []pipeline.Option
	var publisher *pipeline.ChannelPublisher
	done := make(chan struct{})
	if c.Bool("progress") {
		publisher = pipeline.NewChannelPublisher(64, slog.Default())
		pipelineOpts = append(pipelineOpts, pipeline.WithPublisher(publisher))
		go func() {
			defer close(done)
			for event := range publisher.Events() {
				fmt.Fprintf(os.Stderr, "[%3d%%] %s: %s\n", event.Percent, event.Stage, event.Message)
			}
		}()
	} else {
		close(done)
	}

	order, runErr := service.RunDocument(context.Background(), c.String("job-id"), string(document), pipelineOpts...)
	if publisher != nil {
		publisher.Close()
	}
	<-done
	if runErr != nil {
		return runErr
	}

	return printJSON(order)
}

func reembedCommand(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	cfg := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	return service.Reembed(context.Background(), cfg, os.Stderr)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
