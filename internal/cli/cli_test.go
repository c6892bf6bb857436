package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/codelens-ai/codelens/internal/config"
)

// resetFlags resets all package-level flag variables to their zero values.
func resetFlags() {
	flagFile = ""
	flagLang = ""
	flagMode = ""
	flagTemperature = 0
	flagMaxTokens = 0
	flagInputBudget = 0
	flagProvider = ""
	flagModel = ""
	flagFormat = ""
	flagOut = ""
	flagRules = ""
	flagNoRedact = false
	flagAddr = ""
	flagLogJSON = false
}

// --- buildOverrides tests ---

func TestBuildOverrides_NoFlags(t *testing.T) {
	resetFlags()
	m := buildOverrides()
	if len(m) != 0 {
		t.Errorf("buildOverrides() with no flags = %v, want empty map", m)
	}
}

func TestBuildOverrides_AllFlags(t *testing.T) {
	resetFlags()
	flagProvider = "openai"
	flagModel = "gpt-4.1-mini"
	flagFormat = "json"
	flagTemperature = 0.5
	flagMaxTokens = 512
	flagInputBudget = -1
	flagRules = "rules.json"

	m := buildOverrides()

	expected := map[string]string{
		"provider":    "openai",
		"model":       "gpt-4.1-mini",
		"format":      "json",
		"temperature": "0.5",
		"maxTokens":   "512",
		"inputBudget": "-1",
		"rulesFile":   "rules.json",
	}

	if len(m) != len(expected) {
		t.Fatalf("buildOverrides() returned %d entries, want %d", len(m), len(expected))
	}
	for k, v := range expected {
		if m[k] != v {
			t.Errorf("buildOverrides()[%q] = %q, want %q", k, m[k], v)
		}
	}
}

func TestBuildOverrides_ZeroValuesExcluded(t *testing.T) {
	resetFlags()
	flagProvider = "groq"

	m := buildOverrides()

	if _, ok := m["temperature"]; ok {
		t.Error("temperature=0 should not be in overrides")
	}
	if _, ok := m["maxTokens"]; ok {
		t.Error("maxTokens=0 should not be in overrides")
	}
	if _, ok := m["inputBudget"]; ok {
		t.Error("inputBudget=0 should not be in overrides")
	}
}

func TestBuildOverrides_NegativeInputBudgetIncluded(t *testing.T) {
	resetFlags()
	flagInputBudget = -1

	m := buildOverrides()

	if m["inputBudget"] != "-1" {
		t.Errorf("inputBudget = %q, want %q", m["inputBudget"], "-1")
	}
}

// --- readCode tests ---

func TestReadCode_FromFile(t *testing.T) {
	resetFlags()
	path := filepath.Join(t.TempDir(), "sample.py")
	if err := os.WriteFile(path, []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	flagFile = path

	code, err := readCode()
	if err != nil {
		t.Fatalf("readCode() error: %v", err)
	}
	if code != "print('hi')\n" {
		t.Errorf("readCode() = %q, want file contents", code)
	}
}

func TestReadCode_MissingFile(t *testing.T) {
	resetFlags()
	flagFile = filepath.Join(t.TempDir(), "does-not-exist.go")

	if _, err := readCode(); err == nil {
		t.Error("readCode() with missing file should return error")
	}
}

// --- version command tests ---

func TestVersionCmd_Execute(t *testing.T) {
	err := versionCmd.Execute()
	if err != nil {
		t.Errorf("version command returned error: %v", err)
	}
}

// --- models command tests ---

func TestModelsListCmd_Execute(t *testing.T) {
	modelsCmd.SetArgs([]string{"list"})
	err := modelsCmd.Execute()
	if err != nil {
		t.Errorf("models list command returned error: %v", err)
	}
}

func TestKnownModels_AllProviders(t *testing.T) {
	providers := map[string]bool{
		"groq":      false,
		"openai":    false,
		"anthropic": false,
		"gemini":    false,
		"ollama":    false,
	}

	for _, info := range knownModels {
		if _, ok := providers[info.Provider]; ok {
			providers[info.Provider] = true
		}
		if len(info.Models) == 0 {
			t.Errorf("provider %s has no models", info.Provider)
		}
	}

	for provider, found := range providers {
		if !found {
			t.Errorf("expected provider %q not found in knownModels", provider)
		}
	}
}

// --- config command tests ---

func TestConfigInit_CreatesFile(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configCmd.SetArgs([]string{"init"})
	err := configCmd.Execute()
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}

	configPath := filepath.Join(tmpDir, "codelens", "config.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config init did not create config.json")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("cannot read config file: %v", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("config file is not valid JSON: %v", err)
	}
	if cfg.Provider == "" {
		t.Error("config file has empty provider")
	}
}

func TestConfigInit_AlreadyExists(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfgDir := filepath.Join(tmpDir, "codelens")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte(`{"provider":"openai"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	configCmd.SetArgs([]string{"init"})
	err := configCmd.Execute()
	if err != nil {
		t.Fatalf("config init with existing file returned error: %v", err)
	}

	// Verify original content is preserved (not overwritten)
	data, err := os.ReadFile(filepath.Join(cfgDir, "config.json"))
	if err != nil {
		t.Fatalf("cannot read config file: %v", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("config init overwrote existing file: provider = %q, want %q", cfg.Provider, "openai")
	}
}

func TestConfigSet_UpdatesFile(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configCmd.SetArgs([]string{"set", "provider", "ollama"})
	err := configCmd.Execute()
	if err != nil {
		t.Fatalf("config set returned error: %v", err)
	}

	configPath := filepath.Join(tmpDir, "codelens", "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("cannot read config file: %v", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("config file is not valid JSON: %v", err)
	}
	if cfg.Provider != "ollama" {
		t.Errorf("provider = %q, want %q", cfg.Provider, "ollama")
	}
}

func TestConfigSet_InvalidKey(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configCmd.SetArgs([]string{"set", "unknownKey", "value"})
	err := configCmd.Execute()
	if err == nil {
		t.Error("config set with invalid key should return error")
	}
}

func TestConfigSet_MissingArgs(t *testing.T) {
	resetFlags()

	configCmd.SetArgs([]string{"set", "provider"})
	err := configCmd.Execute()
	if err == nil {
		t.Error("config set with 1 arg should return error (requires 2)")
	}
}

func TestConfigShow_Execute(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configCmd.SetArgs([]string{"show"})
	err := configCmd.Execute()
	if err != nil {
		t.Errorf("config show returned error: %v", err)
	}
}

func TestConfigGet_UnknownKey(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configCmd.SetArgs([]string{"get", "unknownKey"})
	err := configCmd.Execute()
	if err == nil {
		t.Error("config get with unknown key should return error")
	}
}

func TestConfigGet_KnownKey(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configCmd.SetArgs([]string{"get", "provider"})
	err := configCmd.Execute()
	if err != nil {
		t.Errorf("config get returned error: %v", err)
	}
}

func TestConfigPath_Execute(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configCmd.SetArgs([]string{"path"})
	err := configCmd.Execute()
	if err != nil {
		t.Errorf("config path returned error: %v", err)
	}
}

// --- exit code constants tests ---

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitUsageError", ExitUsageError, 2},
		{"ExitAuthError", ExitAuthError, 3},
		{"ExitRuntimeError", ExitRuntimeError, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.want)
			}
		})
	}
}

func TestVersionConstant(t *testing.T) {
	if version == "" {
		t.Error("version constant is empty")
	}
}
