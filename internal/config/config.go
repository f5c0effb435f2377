package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields seodesk needs to reach the SEO-AI API.
type Config struct {
	APIBase     string
	Token       string
	Language    string
	ProcessPoll time.Duration
	ArchivePoll time.Duration
	StateDir    string
}

const (
	defaultConfigPath  = "~/.config/seodesk/config.toml"
	defaultStateDir    = "~/.local/state/seodesk"
	defaultAPIBase     = "http://127.0.0.1:8700"
	defaultLanguage    = "ru"
	defaultProcessPoll = 5 * time.Second
	defaultArchivePoll = 10 * time.Second
)

// Load locates and parses the seodesk config, falling back to defaults when
// missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBase:     defaultAPIBase,
		Language:    defaultLanguage,
		ProcessPoll: defaultProcessPoll,
		ArchivePoll: defaultArchivePoll,
		StateDir:    mustExpand(defaultStateDir),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase            string `toml:"api_base"`
		Token              string `toml:"token"`
		Language           string `toml:"language"`
		ProcessPollSeconds int    `toml:"process_poll_seconds"`
		ArchivePollSeconds int    `toml:"archive_poll_seconds"`
		StateDir           string `toml:"state_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = base
	}
	cfg.Token = strings.TrimSpace(raw.Token)
	if lang := normalizeLanguage(raw.Language); lang != "" {
		cfg.Language = lang
	}
	if raw.ProcessPollSeconds > 0 {
		cfg.ProcessPoll = time.Duration(raw.ProcessPollSeconds) * time.Second
	}
	if raw.ArchivePollSeconds > 0 {
		cfg.ArchivePoll = time.Duration(raw.ArchivePollSeconds) * time.Second
	}
	if dir := strings.TrimSpace(raw.StateDir); dir != "" {
		cfg.StateDir = mustExpand(dir)
	}

	return cfg, nil
}

// ProcessedCardsPath returns the path of the persisted processed-card id set.
func (c Config) ProcessedCardsPath() string {
	return filepath.Join(c.StateDir, "processed_cards.json")
}

// DebugLogPath returns the path of the debug log file.
func (c Config) DebugLogPath() string {
	return filepath.Join(c.StateDir, "debug.log")
}

func normalizeLanguage(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "ru":
		return "ru"
	case "kk":
		return "kk"
	case "en":
		return "en"
	default:
		return ""
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
