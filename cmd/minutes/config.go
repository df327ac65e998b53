package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/minutes/ai"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// tokenEnv is the environment variable holding the API key for both services.
const tokenEnv = "OPENAI_API_KEY"

// fileConfig is the optional YAML config file. Flags override its values.
type fileConfig struct {
	Database string         `yaml:"database"`
	AI       aiFileConfig   `yaml:"ai"`
	Pipeline pipelineConfig `yaml:"pipeline"`
}

type aiFileConfig struct {
	EmbeddingHost  string        `yaml:"embedding_host"`
	EmbeddingModel string        `yaml:"embedding_model"`
	SummaryHost    string        `yaml:"summary_host"`
	SummaryModel   string        `yaml:"summary_model"`
	SummaryTimeout time.Duration `yaml:"summary_timeout"`
}

type pipelineConfig struct {
	ThemeCount  int           `yaml:"theme_count"`
	ArtifactTTL time.Duration `yaml:"artifact_ttl"`
	PoolSize    int           `yaml:"pool_size"`
}

// loadConfig reads the YAML config at path. An empty path yields an empty config.
func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// loadEnv loads environment files in order. Missing files are skipped and
// variables already set in the environment are kept.
func loadEnv(files ...string) {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			slog.Warn("could not load env file", "file", file, "err", err)
		}
	}
}

// aiConfig merges flags, the config file and the environment into an ai.Config.
func aiConfig(c *cli.Context, fc *fileConfig) *ai.Config {
	embeddingHost := stringSetting(c, "embedding-host", fc.AI.EmbeddingHost)
	summaryHost := stringSetting(c, "summary-host", fc.AI.SummaryHost)
	if summaryHost == "" {
		summaryHost = embeddingHost
	}

	opts := []ai.ConfigOption{
		ai.WithEmbeddingHost(embeddingHost),
		ai.WithSummaryHost(summaryHost),
		ai.WithEmbeddingModel(stringSetting(c, "embedding-model", fc.AI.EmbeddingModel)),
		ai.WithSummaryModel(stringSetting(c, "summary-model", fc.AI.SummaryModel)),
		ai.WithSummaryTimeout(durationSetting(c, "summary-timeout", fc.AI.SummaryTimeout)),
	}
	if token := os.Getenv(tokenEnv); token != "" {
		opts = append(opts, ai.WithToken(token))
	}
	return ai.NewConfig(opts...)
}

func databasePath(c *cli.Context, fc *fileConfig) (string, error) {
	path := stringSetting(c, "db", fc.Database)
	if path == "" {
		return "", errors.New("database path required: pass --db or set database in the config file")
	}
	return path, nil
}

// stringSetting prefers an explicitly set flag, then the file value, then the flag default.
func stringSetting(c *cli.Context, flag, fileValue string) string {
	if c.IsSet(flag) || fileValue == "" {
		return c.String(flag)
	}
	return fileValue
}

func durationSetting(c *cli.Context, flag string, fileValue time.Duration) time.Duration {
	if c.IsSet(flag) || fileValue == 0 {
		return c.Duration(flag)
	}
	return fileValue
}

func intSetting(c *cli.Context, flag string, fileValue int) int {
	if c.IsSet(flag) || fileValue == 0 {
		return c.Int(flag)
	}
	return fileValue
}
