package sshserver

import (
	"fmt"
	"time"

	"github.com/soham247/stellar-portfolio/internal/config"
	"github.com/soham247/stellar-portfolio/internal/site"
	"github.com/spf13/pflag"
)

// DefaultHostKeyName is the host key file created under the XDG data
// directory when no path is configured.
const DefaultHostKeyName = "ssh_host_ed25519"

// Settings are the ssh section of the config file.
type Settings struct {
	ListenAddress string        `mapstructure:"listen-address"`
	ListenPort    int           `mapstructure:"listen-port"`
	HostKeyPath   string        `mapstructure:"host-key-path"`
	IdleTimeout   time.Duration `mapstructure:"idle-timeout"`
	MaxTimeout    time.Duration `mapstructure:"max-timeout"`
}

// Config is the site configuration plus the ssh section, so both servers
// can share one config file.
type Config struct {
	site.Config `mapstructure:",squash"`
	SSH         Settings `mapstructure:"ssh"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Config: *site.NewConfig(),
		SSH: Settings{
			ListenPort:  2222,
			IdleTimeout: 10 * time.Minute,
		},
	}
}

// AddFlags adds pflag flags for the configuration.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.SSH.ListenAddress, "ssh.listen-address", c.SSH.ListenAddress, "Listen address for the SSH server")
	fs.IntVar(&c.SSH.ListenPort, "ssh.listen-port", c.SSH.ListenPort, "Listen port for the SSH server")
	fs.StringVar(&c.SSH.HostKeyPath, "ssh.host-key-path", c.SSH.HostKeyPath, "Host key file, created if missing (default under the XDG data directory)")
	fs.DurationVar(&c.SSH.IdleTimeout, "ssh.idle-timeout", c.SSH.IdleTimeout, "Disconnect sessions idle for this long (0 disables)")
	fs.DurationVar(&c.SSH.MaxTimeout, "ssh.max-timeout", c.SSH.MaxTimeout, "Maximum session length (0 disables)")
	c.Config.AddSharedFlags(fs)
}

// Defaults lists every key so that environment variables can override any
// of them.
func (c *Config) Defaults() map[string]any {
	defaults := c.Config.Defaults()
	defaults["ssh.listen-address"] = c.SSH.ListenAddress
	defaults["ssh.listen-port"] = c.SSH.ListenPort
	defaults["ssh.host-key-path"] = c.SSH.HostKeyPath
	defaults["ssh.idle-timeout"] = c.SSH.IdleTimeout.String()
	defaults["ssh.max-timeout"] = c.SSH.MaxTimeout.String()
	return defaults
}

// LoadConfig loads the configuration from a file and binds it to the Config struct.
func (c *Config) LoadConfig() error {
	return c.LoadConfigWithFlagSet(pflag.CommandLine)
}

// LoadConfigWithFlagSet loads configuration using a specific flag set.
func (c *Config) LoadConfigWithFlagSet(fs *pflag.FlagSet) error {
	loader := config.NewConfigLoader()
	loader.SetConfigFile(c.ConfigFile)
	loader.SetFlagSet(fs)
	loader.SetDotEnvFiles(".env")
	loader.SetDefaults(NewConfig().Defaults())

	if err := loader.LoadConfig(c); err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks the shared settings and the ssh section.
func (c *Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.SSH.ListenPort < 0 || c.SSH.ListenPort > 65535 {
		return fmt.Errorf("%w: ssh.listen-port %d out of range", ErrInvalidConfig, c.SSH.ListenPort)
	}
	if c.SSH.IdleTimeout < 0 || c.SSH.MaxTimeout < 0 {
		return fmt.Errorf("%w: ssh timeouts must not be negative", ErrInvalidConfig)
	}
	return nil
}

// HostKey returns the configured host key path, or the default one.
func (c *Config) HostKey() (string, error) {
	if c.SSH.HostKeyPath != "" {
		return c.SSH.HostKeyPath, nil
	}
	path, err := config.DefaultDataFile(DefaultHostKeyName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHostKey, err)
	}
	return path, nil
}

// GetListenAddress implements httpserver.Config interface
func (c *Config) GetListenAddress() string {
	return c.SSH.ListenAddress
}

// GetListenPort implements httpserver.Config interface
func (c *Config) GetListenPort() int {
	return c.SSH.ListenPort
}
