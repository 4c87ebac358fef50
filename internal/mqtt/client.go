package mqtt

import (
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// Client wraps a paho client that connects in the background and keeps
// retrying until the broker is reachable.
type Client struct {
	client mqtt.Client

	// stop ends the background connect loop; done closes once it has.
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Config holds MQTT client configuration
type Config struct {
	ServerURL         string        `mapstructure:"server-url"`
	ClientID          string        `mapstructure:"client-id"`
	Topic             string        `mapstructure:"topic"`
	MaxRetries        int           `mapstructure:"max-retries"`         // Maximum number of connection retries (0 = infinite)
	InitialRetryDelay time.Duration `mapstructure:"initial-retry-delay"` // Initial delay between retries
	MaxRetryDelay     time.Duration `mapstructure:"max-retry-delay"`     // Maximum delay between retries
}

// DefaultTopic is where contact events are published.
const DefaultTopic = "portfolio/contact"

// NewConfig returns the default MQTT settings. The empty server URL leaves
// MQTT disabled.
func NewConfig() Config {
	return Config{
		Topic:             DefaultTopic,
		InitialRetryDelay: time.Second,
		MaxRetryDelay:     30 * time.Second,
	}
}

var supportedSchemes = map[string]bool{
	"mqtt":  true,
	"mqtts": true,
	"tcp":   true,
	"ssl":   true,
	"tls":   true,
	"ws":    true,
	"wss":   true,
}

// NewClient creates a new MQTT client with the given configuration.
// The client will attempt to connect asynchronously and retry if the initial connection fails
func NewClient(config Config) (*Client, error) {
	parsedURL, err := url.Parse(config.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidServerURL, err)
	}

	if !supportedSchemes[parsedURL.Scheme] {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidServerURL, parsedURL.Scheme)
	}

	clientID := config.ClientID
	if clientID == "" {
		clientID = "stellar-portfolio-" + uuid.NewString()
	}

	// Set default retry values if not specified
	initialDelay := config.InitialRetryDelay
	if initialDelay == 0 {
		initialDelay = time.Second
	}
	maxDelay := config.MaxRetryDelay
	if maxDelay == 0 {
		maxDelay = 30 * time.Second
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.ServerURL)
	opts.SetClientID(clientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(maxDelay)
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Printf("MQTT connection lost: %v", err)
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		log.Printf("Connected to MQTT broker at %s as %s", config.ServerURL, clientID)
	})

	c := &Client{
		client: mqtt.NewClient(opts),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	// Start async connection with retry logic
	go func() {
		defer close(c.done)
		delay := initialDelay
		attempt := 0
		for {
			select {
			case <-c.stop:
				return
			default:
			}

			if token := c.client.Connect(); token.Wait() && token.Error() != nil {
				attempt++
				if config.MaxRetries > 0 && attempt >= config.MaxRetries {
					log.Printf("Failed to connect to MQTT broker after %d attempts, giving up: %v", attempt, token.Error())
					return
				}

				log.Printf("Failed to connect to MQTT broker (attempt %d): %v. Retrying in %v...", attempt, token.Error(), delay)
				select {
				case <-c.stop:
					return
				case <-time.After(delay):
				}

				// Exponential backoff
				delay = delay * 2
				if delay > maxDelay {
					delay = maxDelay
				}
				continue
			}

			// Disconnect raced with a successful connect.
			select {
			case <-c.stop:
				c.client.Disconnect(0)
			default:
			}
			return
		}
	}()

	return c, nil
}

// Publish publishes a message to the specified topic
func (c *Client) Publish(topic string, qos byte, retained bool, payload any) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	if token := c.client.Publish(topic, qos, retained, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("%w: %v", ErrPublishFailed, token.Error())
	}

	return nil
}

// IsConnected returns true if the client is connected to the MQTT broker
func (c *Client) IsConnected() bool {
	return c != nil && c.client != nil && c.client.IsConnected()
}

// Disconnect stops any pending connection attempts and disconnects from the
// MQTT broker. It is safe to call more than once.
func (c *Client) Disconnect(quiesce uint) {
	if c == nil {
		return
	}
	if c.stop != nil {
		c.stopOnce.Do(func() { close(c.stop) })
	}
	if c.IsConnected() {
		c.client.Disconnect(quiesce)
		log.Printf("Disconnected from MQTT broker")
	}
}
