package sshserver

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/soham247/stellar-portfolio/internal/cli"
	"github.com/soham247/stellar-portfolio/internal/content"
	"github.com/soham247/stellar-portfolio/internal/site"
)

// SSHHandler implements cli.CommandHandler for the SSH server
type SSHHandler struct{}

// NewSSHHandler creates a new SSH command handler
func NewSSHHandler() *SSHHandler {
	return &SSHHandler{}
}

// Start starts the SSH server with the given configuration
func (h *SSHHandler) Start(config cli.Configurable) error {
	cfg, ok := config.(*Config)
	if !ok {
		return fmt.Errorf("invalid config type for ssh server")
	}

	srv, cleanup, err := Setup(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// Setup loads the content and builds the server around the same contact
// submitter the web site uses.
func Setup(cfg *Config) (*Server, func(), error) {
	c, err := content.Load(cfg.ContentFile)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", site.ErrContentLoad, err)
	}

	submitter, cleanup, err := site.NewSubmitter(&cfg.Config)
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

// ListSubmissions implements cli.Lister.
func (h *SSHHandler) ListSubmissions(config cli.Configurable, w io.Writer) error {
	cfg, ok := config.(*Config)
	if !ok {
		return fmt.Errorf("invalid config type for ssh server")
	}
	return site.ListSubmissions(context.Background(), &cfg.Config, w, 0)
}
