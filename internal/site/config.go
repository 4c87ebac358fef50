package site

import (
	"fmt"

	"github.com/soham247/stellar-portfolio/internal/carousel"
	"github.com/soham247/stellar-portfolio/internal/config"
	"github.com/soham247/stellar-portfolio/internal/contact"
	"github.com/soham247/stellar-portfolio/internal/mqtt"
	"github.com/soham247/stellar-portfolio/internal/store"
	"github.com/spf13/pflag"
)

// CarouselConfig controls the scrolling project strip.
type CarouselConfig struct {
	Step      float64 `mapstructure:"step"`
	ItemWidth float64 `mapstructure:"item-width"`
}

// Config holds the configuration for the site server.
type Config struct {
	ListenAddress  string         `mapstructure:"listen-address"`
	ListenPort     int            `mapstructure:"listen-port"`
	ConfigFile     string         `mapstructure:"config"`
	ContentFile    string         `mapstructure:"content-file"`
	AssetsDir      string         `mapstructure:"assets-dir"`
	ResumeURL      string         `mapstructure:"resume-url"`
	AllowedOrigins []string       `mapstructure:"allowed-origins"`
	Contact        contact.Config `mapstructure:"contact"`
	Store          store.Config   `mapstructure:"store"`
	MQTT           mqtt.Config    `mapstructure:"mqtt"`
	Carousel       CarouselConfig `mapstructure:"carousel"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		ListenAddress: "",
		ListenPort:    8080,
		AssetsDir:     "public",
		Contact:       contact.NewConfig(),
		MQTT:          mqtt.NewConfig(),
		Carousel: CarouselConfig{
			Step:      carousel.DefaultStep,
			ItemWidth: carousel.DefaultItemWidth,
		},
	}
}

// AddFlags adds pflag flags for the configuration.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ListenAddress, "listen-address", c.ListenAddress, "Listen address for the site")
	fs.IntVar(&c.ListenPort, "listen-port", c.ListenPort, "Listen port for the site")
	fs.StringVar(&c.AssetsDir, "assets-dir", c.AssetsDir, "Directory served under /assets/ (images, photo)")
	fs.StringVar(&c.ResumeURL, "resume-url", c.ResumeURL, "Where /resume redirects to")
	fs.StringSliceVar(&c.AllowedOrigins, "allowed-origins", c.AllowedOrigins, "Origins allowed to call the contact API")
	fs.Float64Var(&c.Carousel.Step, "carousel.step", c.Carousel.Step, "Pixels the carousel moves per frame")
	fs.Float64Var(&c.Carousel.ItemWidth, "carousel.item-width", c.Carousel.ItemWidth, "Width of a carousel card including the gap")
	c.AddSharedFlags(fs)
}

// AddSharedFlags adds the flags for the settings the web site and the SSH
// server have in common: config file, content and contact delivery.
func (c *Config) AddSharedFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", config.DefaultConfigFile(), "Config file to use")
	fs.StringVar(&c.ContentFile, "content-file", c.ContentFile, "YAML file replacing the built-in content")

	fs.StringVar(&c.Contact.AccessKey, "contact.access-key", c.Contact.AccessKey, "Form relay access key")
	fs.StringVar(&c.Contact.RelayURL, "contact.relay-url", c.Contact.RelayURL, "Form relay endpoint")
	fs.StringVar(&c.Contact.FromName, "contact.from-name", c.Contact.FromName, "Sender name shown in relayed mail")
	fs.DurationVar(&c.Contact.Timeout, "contact.timeout", c.Contact.Timeout, "Timeout for relay requests")
	fs.IntVar(&c.Contact.RateLimit, "contact.rate-limit", c.Contact.RateLimit, "Messages per minute allowed from one client")
	fs.IntVar(&c.Contact.Burst, "contact.burst", c.Contact.Burst, "Messages one client may send back to back")

	fs.StringVar(&c.Store.Path, "store.path", c.Store.Path, "SQLite file recording submissions (empty disables)")

	fs.StringVar(&c.MQTT.ServerURL, "mqtt.server-url", c.MQTT.ServerURL, "MQTT broker announcing new messages (empty disables)")
	fs.StringVar(&c.MQTT.ClientID, "mqtt.client-id", c.MQTT.ClientID, "MQTT client ID")
	fs.StringVar(&c.MQTT.Topic, "mqtt.topic", c.MQTT.Topic, "MQTT topic for contact events")
}

// Defaults lists every key so that environment variables can override any
// of them.
func (c *Config) Defaults() map[string]any {
	return map[string]any{
		"listen-address":      c.ListenAddress,
		"listen-port":         c.ListenPort,
		"content-file":        c.ContentFile,
		"assets-dir":          c.AssetsDir,
		"resume-url":          c.ResumeURL,
		"allowed-origins":     c.AllowedOrigins,
		"contact.access-key":  c.Contact.AccessKey,
		"contact.relay-url":   c.Contact.RelayURL,
		"contact.from-name":   c.Contact.FromName,
		"contact.timeout":     c.Contact.Timeout.String(),
		"contact.rate-limit":  c.Contact.RateLimit,
		"contact.burst":       c.Contact.Burst,
		"store.path":          c.Store.Path,
		"mqtt.server-url":     c.MQTT.ServerURL,
		"mqtt.client-id":      c.MQTT.ClientID,
		"mqtt.topic":          c.MQTT.Topic,
		"carousel.step":       c.Carousel.Step,
		"carousel.item-width": c.Carousel.ItemWidth,
	}
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

// Validate checks values that would otherwise fail at request time.
func (c *Config) Validate() error {
	if c.ListenPort < 0 || c.ListenPort > 65535 {
		return fmt.Errorf("%w: listen-port %d out of range", ErrInvalidConfig, c.ListenPort)
	}
	if c.Carousel.Step <= 0 {
		return fmt.Errorf("%w: carousel.step must be positive", ErrInvalidConfig)
	}
	if c.Carousel.ItemWidth <= carouselGap {
		return fmt.Errorf("%w: carousel.item-width must be larger than %v", ErrInvalidConfig, carouselGap)
	}
	if c.Contact.RelayURL == "" {
		return fmt.Errorf("%w: contact.relay-url is required", ErrInvalidConfig)
	}
	return nil
}

// GetListenAddress implements httpserver.Config interface
func (c *Config) GetListenAddress() string {
	return c.ListenAddress
}

// GetListenPort implements httpserver.Config interface
func (c *Config) GetListenPort() int {
	return c.ListenPort
}
