package site

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/soham247/stellar-portfolio/internal/cli"
	"github.com/soham247/stellar-portfolio/internal/contact"
	"github.com/soham247/stellar-portfolio/internal/store"
)

// ListSubmissions implements cli.Lister.
func (h *SiteHandler) ListSubmissions(config cli.Configurable, w io.Writer) error {
	cfg, ok := config.(*Config)
	if !ok {
		return fmt.Errorf("invalid config type for site server")
	}
	return ListSubmissions(context.Background(), cfg, w, 0)
}

// ListSubmissions prints the totals per outcome and the latest limit
// submissions from the store at cfg.Store.Path. A non-positive limit means
// the store's default.
func ListSubmissions(ctx context.Context, cfg *Config, w io.Writer, limit int) error {
	if cfg.Store.Path == "" {
		return ErrNoStore
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreOpen, err)
	}
	defer st.Close() //nolint:errcheck

	total, err := st.Count(ctx, "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrListSubmissions, err)
	}
	counts := make([]string, 0, len(contact.Outcomes))
	for _, outcome := range contact.Outcomes {
		n, err := st.Count(ctx, outcome)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrListSubmissions, err)
		}
		counts = append(counts, fmt.Sprintf("%s %d", outcome, n))
	}
	fmt.Fprintf(w, "%d submissions (%s)\n", total, strings.Join(counts, ", "))

	subs, err := st.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrListSubmissions, err)
	}
	if len(subs) == 0 {
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TIME", "OUTCOME", "CLIENT", "NAME", "EMAIL", "SUBJECT")
	for _, sub := range subs {
		t.Row(
			sub.ID,
			sub.CreatedAt.Format(time.DateTime),
			string(sub.Outcome),
			sub.Client,
			sub.Form.Name,
			sub.Form.Email,
			sub.Form.Subject,
		)
	}
	_, err = fmt.Fprintln(w, t.Render())
	return err
}
