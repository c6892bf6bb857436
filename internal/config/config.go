package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the codelens configuration.
type Config struct {
	Provider    string        `json:"provider"`
	Model       string        `json:"model"`
	Addr        string        `json:"addr"`
	Format      string        `json:"format"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"maxTokens"`
	InputBudget int           `json:"inputBudget"`
	RulesFile   string        `json:"rulesFile,omitempty"`
	Privacy     PrivacyConfig `json:"privacy"`
}

// PrivacyConfig controls secret redaction.
type PrivacyConfig struct {
	RedactSecrets bool     `json:"redactSecrets"`
	RedactPaths   []string `json:"redactPaths,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:    "groq",
		Model:       "llama-3.3-70b-versatile",
		Addr:        ":8080",
		Format:      "text",
		Temperature: 0.7,
		MaxTokens:   1024,
		InputBudget: 800,
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/*secrets*"},
		},
	}
}

// Dir returns the platform-appropriate config directory for codelens.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "codelens"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "codelens"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "codelens"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "codelens"), nil
	default:
		return filepath.Join(home, ".config", "codelens"), nil
	}
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Addr != "" {
		dst.Addr = src.Addr
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Temperature > 0 {
		dst.Temperature = src.Temperature
	}
	if src.MaxTokens > 0 {
		dst.MaxTokens = src.MaxTokens
	}
	if src.InputBudget != 0 {
		dst.InputBudget = src.InputBudget
	}
	if src.RulesFile != "" {
		dst.RulesFile = src.RulesFile
	}
	// JSON zero value for bool can't distinguish unset from false, so the
	// file value wins only when it enables redaction.
	dst.Privacy.RedactSecrets = src.Privacy.RedactSecrets || dst.Privacy.RedactSecrets
	if len(src.Privacy.RedactPaths) > 0 {
		dst.Privacy.RedactPaths = src.Privacy.RedactPaths
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("CODELENS_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("CODELENS_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CODELENS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CODELENS_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CODELENS_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("CODELENS_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("CODELENS_INPUT_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.InputBudget = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		// Unknown keys in overrides are a programming error upstream;
		// SetField reports them.
		_ = SetField(cfg, key, value)
	}
}

// GetField returns a single config field by key name as a string. Returns an
// error if the key is unknown.
func GetField(cfg Config, key string) (string, error) {
	switch key {
	case "provider":
		return cfg.Provider, nil
	case "model":
		return cfg.Model, nil
	case "addr":
		return cfg.Addr, nil
	case "format":
		return cfg.Format, nil
	case "temperature":
		return strconv.FormatFloat(cfg.Temperature, 'g', -1, 64), nil
	case "maxTokens":
		return strconv.Itoa(cfg.MaxTokens), nil
	case "inputBudget":
		return strconv.Itoa(cfg.InputBudget), nil
	case "rulesFile":
		return cfg.RulesFile, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown or the value does not parse.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "addr":
		cfg.Addr = value
	case "format":
		cfg.Format = value
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = f
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer: %w", err)
		}
		cfg.MaxTokens = n
	case "inputBudget":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("inputBudget must be an integer: %w", err)
		}
		cfg.InputBudget = n
	case "rulesFile":
		cfg.RulesFile = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
