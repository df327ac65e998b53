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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "minutes",
		Usage: "Turn meeting transcripts into structured notes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Environment files to load before reading OPENAI_API_KEY",
				Value: cli.NewStringSlice(".env"),
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "all-minilm",
			},
			&cli.StringFlag{
				Name:  "summary-host",
				Usage: "Summarization service host URL (defaults to the embedding host)",
			},
			&cli.StringFlag{
				Name:  "summary-model",
				Usage: "Summarization model name; empty disables generative summaries",
			},
			&cli.DurationFlag{
				Name:  "summary-timeout",
				Usage: "Timeout for a single summarization call",
				Value: 30 * time.Second,
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Append transcript segments for a meeting from a YAML or JSON file",
				Action: importCommand,
				Flags: []cli.Flag{
					meetingFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Transcript file (list of {content, speaker_id, timestamp})",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Usage: "How long the segments are retained (0 keeps them until deleted)",
						Value: time.Hour,
					},
				},
			},
			{
				Name:   "process",
				Usage:  "Process meetings and print their notes artifacts",
				Action: processCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "meeting",
						Aliases: []string{"m"},
						Usage:   "Meeting ID (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Process every meeting with stored segments",
					},
					&cli.IntFlag{
						Name:  "themes",
						Usage: "Number of themes to extract",
						Value: 5,
					},
					&cli.DurationFlag{
						Name:  "artifact-ttl",
						Usage: "How long artifacts stay cached",
						Value: 24 * time.Hour,
					},
				},
			},
			{
				Name:   "show",
				Usage:  "Print the cached notes artifact for a meeting",
				Action: showCommand,
				Flags:  []cli.Flag{meetingFlag()},
			},
			{
				Name:   "meetings",
				Usage:  "List meetings with stored segments",
				Action: meetingsCommand,
			},
			{
				Name:   "delete",
				Usage:  "Delete the cached artifact for a meeting",
				Action: deleteCommand,
				Flags: []cli.Flag{
					meetingFlag(),
					&cli.BoolFlag{
						Name:  "transcripts",
						Usage: "Also delete the stored transcript segments",
					},
				},
			},
		},
	}
}

func meetingFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "meeting",
		Aliases:  []string{"m"},
		Usage:    "Meeting ID",
		Required: true,
	}
}

func setup(c *cli.Context) error {
	if err := setupLogger(c); err != nil {
		return err
	}
	loadEnv(c.StringSlice("env-file")...)
	return nil
}

func setupLogger(c *cli.Context) error {
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

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
