package site

import (
	"fmt"
	"log"

	"github.com/soham247/stellar-portfolio/internal/cli"
	"github.com/soham247/stellar-portfolio/internal/contact"
	"github.com/soham247/stellar-portfolio/internal/content"
	"github.com/soham247/stellar-portfolio/internal/httpserver"
	"github.com/soham247/stellar-portfolio/internal/mqtt"
	"github.com/soham247/stellar-portfolio/internal/store"
)

// SiteHandler implements cli.CommandHandler for the site server
type SiteHandler struct{}

// NewSiteHandler creates a new site command handler
func NewSiteHandler() *SiteHandler {
	return &SiteHandler{}
}

// Start starts the site server with the given configuration
func (h *SiteHandler) Start(config cli.Configurable) error {
	cfg, ok := config.(*Config)
	if !ok {
		return fmt.Errorf("invalid config type for site server")
	}

	srv, cleanup, err := Setup(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return httpserver.StartFromConfig(cfg, srv)
}

// Setup loads the content and builds the server around a submitter from
// NewSubmitter. The returned cleanup function releases the submitter's
// resources.
func Setup(cfg *Config) (*Server, func(), error) {
	c, err := content.Load(cfg.ContentFile)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrContentLoad, err)
	}

	submitter, cleanup, err := NewSubmitter(cfg)
	if err != nil {
		return nil, nil, err
	}

	srv, err := NewServer(cfg, c, submitter)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return srv, cleanup, nil
}

// NewSubmitter creates the contact form submitter, with the optional
// submission store and MQTT connection described by cfg. The returned
// cleanup function closes them in reverse order.
func NewSubmitter(cfg *Config) (*contact.Submitter, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var opts []contact.SubmitterOption

	if cfg.Store.Path != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrStoreOpen, err)
		}
		log.Printf("recording contact submissions in %s", cfg.Store.Path)
		closers = append(closers, func() {
			if err := st.Close(); err != nil {
				log.Printf("failed to close submission store: %v", err)
			}
		})
		opts = append(opts, contact.WithRecorder(st))
	}

	if cfg.MQTT.ServerURL != "" {
		client, err := mqtt.NewClient(cfg.MQTT)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { client.Disconnect(250) })
		opts = append(opts, contact.WithNotifier(mqtt.NewNotifier(client, cfg.MQTT.Topic)))
	}

	submitter, err := contact.NewSubmitterFromConfig(cfg.Contact, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return submitter, cleanup, nil
}
