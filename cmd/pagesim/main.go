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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/pagesim"
	"github.com/poiesic/pagesim/ai"
	"github.com/poiesic/pagesim/heatmap"
)

func main() {
	app := &cli.App{
		Name:  "pagesim",
		Usage: "Score webpage sections against a target query",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Fetch a webpage and score its sections against a query",
				Action: analyzeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Aliases:  []string{"u"},
						Usage:    "Webpage URL to analyze",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Target query to score sections against",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "backend",
						Aliases: []string{"b"},
						Usage:   "Embedding backend (local or remote)",
						Value:   pagesim.BackendRemote,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "analyzer-host",
						Usage: "Sentiment/entity analysis service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Remote embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "analyzer-model",
						Usage: "Analysis model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "model-path",
						Usage: "ONNX model file for the local backend",
						Value: "models/all-MiniLM-L6-v2/model.onnx",
					},
					&cli.StringFlag{
						Name:  "tokenizer-path",
						Usage: "Tokenizer file for the local backend",
						Value: "models/all-MiniLM-L6-v2/tokenizer.json",
					},
				},
			},
			{
				Name:   "backends",
				Usage:  "List the available embedding backends",
				Action: backendsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func analyzeCommand(c *cli.Context) error {
	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithAnalyzerHost(c.String("analyzer-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAnalyzerModel(c.String("analyzer-model")),
		ai.WithLocalModel(c.String("model-path"), c.String("tokenizer-path")),
	)
	if key := os.Getenv("PAGESIM_API_KEY"); key != "" {
		ai.WithAPIKey(key)(config)
	}
	if lib := os.Getenv("PAGESIM_ORT_LIBRARY"); lib != "" {
		ai.WithOrtLibrary(lib)(config)
	}

	analyzer, err := pagesim.NewAnalyzer(pagesim.WithAIConfig(config))
	if err != nil {
		return err
	}
	defer analyzer.Close()

	report, err := analyzer.AnalyzeURL(context.Background(), c.String("url"), c.String("query"), c.String("backend"))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return printReport(report)
}

func printReport(report *pagesim.Report) error {
	fmt.Printf("Page: %s\n", report.Page.Title)
	fmt.Printf("Sections analyzed: %d\n", len(report.Result.Sections))
	fmt.Printf("Average score: %.2f\n\n", report.Average)

	if err := heatmap.Render(os.Stdout, report.Result.Scores, nil); err != nil {
		return err
	}

	fmt.Println()
	for i, section := range report.Result.Sections {
		fmt.Printf("Section %d (%.2f): %s\n", i+1, report.Result.Scores[i], truncate(section, 80))
		if s := report.Result.Sentiments[i]; s != nil {
			fmt.Printf("  Sentiment: score %.2f, magnitude %.2f\n", s.Score, s.Magnitude)
		} else {
			fmt.Println("  Sentiment: unavailable")
		}
		if entities := report.Result.Entities[i]; len(entities) > 0 {
			names := make([]string, len(entities))
			for j, e := range entities {
				names[j] = fmt.Sprintf("%s (%s)", e.Name, e.Type)
			}
			fmt.Printf("  Entities: %s\n", strings.Join(names, ", "))
		}
	}

	if len(report.Suggestions) > 0 {
		fmt.Println("\nOptimization suggestions:")
		for _, suggestion := range report.Suggestions {
			fmt.Println(suggestion.String())
		}
	}

	return nil
}

func backendsCommand(_ *cli.Context) error {
	analyzer, err := pagesim.NewAnalyzer()
	if err != nil {
		return err
	}
	defer analyzer.Close()

	for _, name := range analyzer.Backends() {
		fmt.Println(name)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func setup(c *cli.Context) error {
	if envFile := c.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else {
		// Best effort: a .env in the working directory is optional.
		_ = godotenv.Load()
	}

	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
