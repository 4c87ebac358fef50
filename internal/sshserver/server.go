// Package sshserver serves the terminal rendition of the portfolio over SSH.
// Every session gets its own carousel loop, stopped when the connection
// closes.
package sshserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/soham247/stellar-portfolio/internal/content"
	"github.com/soham247/stellar-portfolio/internal/httpserver"
	"github.com/soham247/stellar-portfolio/internal/theme"
	"github.com/soham247/stellar-portfolio/internal/tui"
)

// Server is the wish server and the state shared by its sessions.
type Server struct {
	cfg       *Config
	content   *content.Content
	submitter tui.Submitter
	ssh       *ssh.Server
}

// NewServer creates the SSH server. The host key is generated on first use.
func NewServer(cfg *Config, c *content.Content, submitter tui.Submitter) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: no config", ErrInvalidConfig)
	}
	if c == nil {
		return nil, ErrNoContent
	}

	hostKey, err := cfg.HostKey()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		content:   c,
		submitter: submitter,
	}

	srv, err := wish.NewServer(
		wish.WithAddress(httpserver.Address(cfg)),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.SSH.IdleTimeout),
		wish.WithMaxTimeout(cfg.SSH.MaxTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNewServer, err)
	}
	s.ssh = srv

	return s, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.ssh.Addr
}

// NewModel starts a carousel loop bound to ctx and returns the session
// model around it.
func (s *Server) NewModel(ctx context.Context, client string, r *lipgloss.Renderer, mode theme.Mode) (tui.Model, error) {
	loop, err := tui.NewLoop(s.content.Carousel)
	if err != nil {
		return tui.Model{}, err
	}
	if err := loop.Start(ctx); err != nil {
		return tui.Model{}, err
	}

	return tui.NewModel(ctx, tui.Options{
		Content:   s.content,
		Loop:      loop,
		Submitter: s.submitter,
		Client:    client,
		Mode:      mode,
		Renderer:  r,
	}), nil
}

func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	renderer := bubbletea.MakeRenderer(sess)
	mode := theme.Light
	if renderer.HasDarkBackground() {
		mode = theme.Dark
	}

	m, err := s.NewModel(sess.Context(), clientHost(sess.RemoteAddr()), renderer, mode)
	if err != nil {
		log.Printf("failed to start session for %s: %v", sess.RemoteAddr(), err)
		return nil, nil
	}
	return m, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}
}

// clientHost strips the port from addr; rate limits apply per host.
func clientHost(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

// Serve accepts sessions on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting ssh server on %s", ln.Addr())
		if err := s.ssh.Serve(ln); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("%w: %v", ErrServe, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("shutting down ssh server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownTimeout)
	defer cancel()

	if err := s.ssh.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		// Sessions still open after the timeout are cut off.
		_ = s.ssh.Close()
		return fmt.Errorf("%w: %v", ErrShutdown, err)
	}

	log.Println("ssh server gracefully stopped")
	return nil
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.ssh.Addr)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrListen, s.ssh.Addr, err)
	}
	return s.Serve(ctx, ln)
}
