package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

//go:embed testdata/test-config.yaml
var testConfigYAML string

//go:embed testdata/flag-precedence-config.toml
var flagPrecedenceConfigTOML string

//go:embed testdata/standard-config.yaml
var standardConfigYAML string

// TestConfig is a sample config struct for testing
type TestConfig struct {
	ConfigFile    string `mapstructure:"config"`
	ListenAddress string `mapstructure:"listen-address"`
	ListenPort    int    `mapstructure:"listen-port"`
	Debug         bool   `mapstructure:"debug"`
}

func (c *TestConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Config file to use")
	fs.StringVar(&c.ListenAddress, "listen-address", c.ListenAddress, "Listen address")
	fs.IntVar(&c.ListenPort, "listen-port", c.ListenPort, "Listen port")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug mode")
}

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func newTestLoader(fs *pflag.FlagSet, configFile string) *ConfigLoader {
	loader := NewConfigLoader()
	loader.SetFlagSet(fs)
	loader.SetConfigFile(configFile)
	loader.SetDefaults(map[string]any{
		"listen-address": "127.0.0.1",
		"listen-port":    8080,
		"debug":          false,
	})
	return loader
}

func TestConfigLoader_LoadConfig(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", testConfigYAML)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config := &TestConfig{ListenAddress: "127.0.0.1", ListenPort: 8080}
	config.AddFlags(fs)
	if err := fs.Parse([]string{}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if err := newTestLoader(fs, path).LoadConfig(config); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.ListenAddress != "192.168.1.100" {
		t.Errorf("Expected ListenAddress to be '192.168.1.100', got '%s'", config.ListenAddress)
	}
	if config.ListenPort != 9090 {
		t.Errorf("Expected ListenPort to be 9090, got %d", config.ListenPort)
	}
	if !config.Debug {
		t.Errorf("Expected Debug to be true, got %v", config.Debug)
	}
	if config.ConfigFile != path {
		t.Errorf("Expected ConfigFile to be preserved, got '%s'", config.ConfigFile)
	}
}

func TestConfigLoader_FlagPrecedence(t *testing.T) {
	path := writeTempConfig(t, "config.toml", flagPrecedenceConfigTOML)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config := &TestConfig{ListenAddress: "127.0.0.1", ListenPort: 8080}
	config.AddFlags(fs)
	if err := fs.Parse([]string{"--listen-port", "7777"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if err := newTestLoader(fs, path).LoadConfig(config); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.ListenAddress != "192.168.1.100" {
		t.Errorf("Expected ListenAddress from config file: '192.168.1.100', got '%s'", config.ListenAddress)
	}
	if config.ListenPort != 7777 {
		t.Errorf("Expected ListenPort from explicit flag: 7777, got %d", config.ListenPort)
	}
	if !config.Debug {
		t.Errorf("Expected Debug from config file: true, got %v", config.Debug)
	}
}

func TestConfigLoader_EnvironmentPrecedence(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", testConfigYAML)
	t.Setenv("PORTFOLIO_LISTEN_PORT", "6060")
	t.Setenv("PORTFOLIO_LISTEN_ADDRESS", "10.1.1.1")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config := &TestConfig{}
	config.AddFlags(fs)
	if err := fs.Parse([]string{"--listen-address", "0.0.0.0"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if err := newTestLoader(fs, path).LoadConfig(config); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// env beats the file, explicit flags beat env
	if config.ListenPort != 6060 {
		t.Errorf("Expected ListenPort from environment: 6060, got %d", config.ListenPort)
	}
	if config.ListenAddress != "0.0.0.0" {
		t.Errorf("Expected ListenAddress from flag: '0.0.0.0', got '%s'", config.ListenAddress)
	}
}

func TestConfigLoader_NestedKeys(t *testing.T) {
	type ContactConfig struct {
		AccessKey string        `mapstructure:"access-key"`
		Timeout   time.Duration `mapstructure:"timeout"`
	}
	type NestedConfig struct {
		Contact ContactConfig `mapstructure:"contact"`
	}

	t.Setenv("PORTFOLIO_CONTACT_ACCESS_KEY", "from-env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config := &NestedConfig{}
	fs.DurationVar(&config.Contact.Timeout, "contact.timeout", 0, "relay timeout")
	if err := fs.Parse([]string{"--contact.timeout", "3s"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	loader := NewConfigLoader()
	loader.SetFlagSet(fs)
	loader.SetDefaults(map[string]any{
		"contact.access-key": "",
		"contact.timeout":    "15s",
	})

	if err := loader.LoadConfig(config); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Contact.AccessKey != "from-env" {
		t.Errorf("Expected AccessKey from environment, got '%s'", config.Contact.AccessKey)
	}
	if config.Contact.Timeout != 3*time.Second {
		t.Errorf("Expected Timeout from flag: 3s, got %s", config.Contact.Timeout)
	}
}

func TestStandardConfigPattern(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", standardConfigYAML)

	saved := pflag.CommandLine
	defer func() { pflag.CommandLine = saved }()
	pflag.CommandLine = pflag.NewFlagSet("test", pflag.ContinueOnError)

	config := &TestConfig{}
	config.AddFlags(pflag.CommandLine)
	if err := pflag.CommandLine.Parse([]string{}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	defaults := map[string]any{
		"listen-address": "127.0.0.1",
		"listen-port":    8080,
		"debug":          true,
	}

	if err := StandardConfigPattern(config, path, defaults); err != nil {
		t.Fatalf("Failed to load config using StandardConfigPattern: %v", err)
	}

	if config.ListenAddress != "10.0.0.1" {
		t.Errorf("Expected ListenAddress to be '10.0.0.1', got '%s'", config.ListenAddress)
	}
	if config.ListenPort != 5555 {
		t.Errorf("Expected ListenPort to be 5555, got %d", config.ListenPort)
	}
	if config.Debug {
		t.Errorf("Expected Debug to be false, got %v", config.Debug)
	}
}

func TestConfigLoader_EnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_USERNAME", "testuser")
	t.Setenv("TEST_RELAY", "https://relay.example.com/submit")

	path := writeTempConfig(t, "config.yaml", `
listen-address: "$TEST_USERNAME"
listen-port: 8080
contact:
  relay-url: "${TEST_RELAY}"
  from-name: "Portfolio"
`)

	type ContactConfig struct {
		RelayURL string `mapstructure:"relay-url"`
		FromName string `mapstructure:"from-name"`
	}
	type EnvTestConfig struct {
		ListenAddress string        `mapstructure:"listen-address"`
		ListenPort    int           `mapstructure:"listen-port"`
		Contact       ContactConfig `mapstructure:"contact"`
	}

	config := &EnvTestConfig{}
	loader := NewConfigLoader()
	loader.SetFlagSet(nil)
	loader.SetConfigFile(path)

	if err := loader.LoadConfig(config); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.ListenAddress != "testuser" {
		t.Errorf("Expected ListenAddress to be 'testuser', got '%s'", config.ListenAddress)
	}
	if config.Contact.RelayURL != "https://relay.example.com/submit" {
		t.Errorf("Expected RelayURL to be expanded, got '%s'", config.Contact.RelayURL)
	}
	if config.Contact.FromName != "Portfolio" {
		t.Errorf("Expected FromName to remain 'Portfolio', got '%s'", config.Contact.FromName)
	}
}

func TestExpandEnv_NotSet(t *testing.T) {
	os.Unsetenv("NONEXISTENT_VAR")

	tests := []struct {
		in   string
		want string
	}{
		{"${NONEXISTENT_VAR}", "${NONEXISTENT_VAR}"},
		{"$NONEXISTENT_VAR", "$NONEXISTENT_VAR"},
		{"plain", "plain"},
		{"prefix-${NONEXISTENT_VAR}-suffix", "prefix-${NONEXISTENT_VAR}-suffix"},
	}

	for _, tt := range tests {
		if got := ExpandEnv(tt.in); got != tt.want {
			t.Errorf("ExpandEnv(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigLoader_StrictMode(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", "listen-port: 8080\nbogus-key: 1\n")

	config := &TestConfig{}
	loader := NewConfigLoader()
	loader.SetFlagSet(nil)
	loader.SetConfigFile(path)
	loader.SetStrictMode(true)

	err := loader.LoadConfig(config)
	if !errors.Is(err, ErrConfigUnmarshal) {
		t.Fatalf("Expected ErrConfigUnmarshal, got %v", err)
	}
}

func TestConfigLoader_MissingFile(t *testing.T) {
	loader := NewConfigLoader()
	loader.SetFlagSet(nil)
	loader.SetConfigFile("/nonexistent/config.yaml")

	err := loader.LoadConfig(&TestConfig{})
	if !errors.Is(err, ErrConfigFileRead) {
		t.Fatalf("Expected ErrConfigFileRead, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeTempConfig(t, ".env", "DOTENV_ONLY=from-file\nDOTENV_SHADOWED=from-file\n")
	t.Setenv("DOTENV_SHADOWED", "from-env")
	t.Cleanup(func() { os.Unsetenv("DOTENV_ONLY") })

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}

	if got := os.Getenv("DOTENV_ONLY"); got != "from-file" {
		t.Errorf("Expected DOTENV_ONLY=from-file, got %q", got)
	}
	if got := os.Getenv("DOTENV_SHADOWED"); got != "from-env" {
		t.Errorf("Expected existing environment to win, got %q", got)
	}
}
