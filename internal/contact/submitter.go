package contact

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/oklog/ulid/v2"
)

// Messages shown to the visitor.
const (
	MsgSuccess      = "Message sent successfully! I'll get back to you soon."
	MsgNetworkError = "There was an error sending your message. Please try again."
	MsgRelayFailure = "Something went wrong. Please try again."
	MsgThrottled    = "Too many messages. Please wait a moment and try again."
)

// Outcome classifies a submission attempt.
type Outcome string

const (
	OutcomeSent      Outcome = "sent"
	OutcomeRejected  Outcome = "rejected"
	OutcomeFailed    Outcome = "failed"
	OutcomeThrottled Outcome = "throttled"
	OutcomeInvalid   Outcome = "invalid"
)

// Outcomes lists every outcome, delivered first.
var Outcomes = []Outcome{OutcomeSent, OutcomeRejected, OutcomeFailed, OutcomeThrottled, OutcomeInvalid}

// Status is what the form shows after a submission.
type Status struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
	// Field is set for OutcomeInvalid.
	Field string `json:"field,omitempty"`
}

// Success reports whether the message was delivered.
func (s Status) Success() bool {
	return s.Outcome == OutcomeSent
}

// Error reports whether the status should be shown as an error.
func (s Status) Error() bool {
	return s.Outcome != OutcomeSent
}

// Clear reports whether the form fields should be emptied. Only a delivered
// message clears the form; every failure keeps the input for another try.
func (s Status) Clear() bool {
	return s.Success()
}

// Submission is one attempt, as kept by a Recorder.
type Submission struct {
	ID           string
	Client       string
	Form         Form
	Outcome      Outcome
	RelayMessage string
	CreatedAt    time.Time
}

// Recorder keeps a log of submissions.
type Recorder interface {
	Record(ctx context.Context, s Submission) error
}

// Notifier announces delivered submissions.
type Notifier interface {
	Notify(ctx context.Context, s Submission) error
}

// Config holds the contact form settings.
type Config struct {
	AccessKey string        `mapstructure:"access-key"`
	RelayURL  string        `mapstructure:"relay-url"`
	FromName  string        `mapstructure:"from-name"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit int           `mapstructure:"rate-limit"`
	Burst     int           `mapstructure:"burst"`
}

// NewConfig returns the default contact settings.
func NewConfig() Config {
	return Config{
		RelayURL:  DefaultRelayURL,
		FromName:  DefaultFromName,
		Timeout:   DefaultTimeout,
		RateLimit: DefaultRateLimit,
		Burst:     DefaultBurst,
	}
}

// Submitter validates a form, hands it to the relay and turns the result
// into a Status.
type Submitter struct {
	relay     Relay
	accessKey string
	fromName  string
	limiter   *RateLimiter
	recorder  Recorder
	notifier  Notifier
	now       func() time.Time
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithRateLimiter throttles submissions per client.
func WithRateLimiter(l *RateLimiter) SubmitterOption {
	return func(s *Submitter) { s.limiter = l }
}

// WithRecorder logs every attempt.
func WithRecorder(r Recorder) SubmitterOption {
	return func(s *Submitter) { s.recorder = r }
}

// WithNotifier announces delivered messages.
func WithNotifier(n Notifier) SubmitterOption {
	return func(s *Submitter) { s.notifier = n }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SubmitterOption {
	return func(s *Submitter) { s.now = now }
}

// NewSubmitter creates a submitter posting through relay.
func NewSubmitter(relay Relay, accessKey, fromName string, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		relay:     relay,
		accessKey: accessKey,
		fromName:  fromName,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSubmitterFromConfig builds the relay client and rate limiter described
// by cfg.
func NewSubmitterFromConfig(cfg Config, opts ...SubmitterOption) (*Submitter, error) {
	relay, err := NewRelayClient(cfg.RelayURL, WithTimeout(cfg.Timeout))
	if err != nil {
		return nil, err
	}
	if cfg.AccessKey == "" {
		log.Printf("contact: no relay access key configured, submissions will be refused by the relay")
	}
	opts = append([]SubmitterOption{WithRateLimiter(NewRateLimiter(cfg.RateLimit, cfg.Burst))}, opts...)
	return NewSubmitter(relay, cfg.AccessKey, cfg.FromName, opts...), nil
}

// Submit delivers f on behalf of client, which identifies the sender for
// rate limiting. The relay is tried exactly once.
func (s *Submitter) Submit(ctx context.Context, client string, f Form) Status {
	f = f.Trimmed()
	now := s.now()

	sub := Submission{
		ID:        ulid.Make().String(),
		Client:    client,
		Form:      f,
		CreatedAt: now.UTC(),
	}

	if err := f.Validate(); err != nil {
		status := Status{Outcome: OutcomeInvalid, Message: MsgRelayFailure}
		var verr *ValidationError
		if errors.As(err, &verr) {
			status = Status{Outcome: OutcomeInvalid, Message: verr.Message(), Field: verr.Field}
		}
		sub.Outcome = status.Outcome
		sub.RelayMessage = err.Error()
		s.record(ctx, sub)
		return status
	}

	if !s.limiter.Allow(client, now) {
		log.Printf("contact: throttled submission from %s", client)
		sub.Outcome = OutcomeThrottled
		s.record(ctx, sub)
		return Status{Outcome: OutcomeThrottled, Message: MsgThrottled}
	}

	var status Status
	resp, err := s.relay.Send(ctx, NewPayload(f, s.accessKey, s.fromName))
	switch {
	case err != nil:
		log.Printf("contact: %v", err)
		sub.RelayMessage = err.Error()
		status = Status{Outcome: OutcomeFailed, Message: MsgNetworkError}
	case resp.Success:
		sub.RelayMessage = resp.Message
		status = Status{Outcome: OutcomeSent, Message: MsgSuccess}
	default:
		sub.RelayMessage = resp.Message
		msg := resp.Message
		if msg == "" {
			msg = MsgRelayFailure
		}
		status = Status{Outcome: OutcomeRejected, Message: msg}
	}
	sub.Outcome = status.Outcome

	s.record(ctx, sub)
	return status
}

func (s *Submitter) record(ctx context.Context, sub Submission) {
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, sub); err != nil {
			log.Printf("contact: failed to record submission %s: %v", sub.ID, err)
		}
	}
	if s.notifier != nil && sub.Outcome == OutcomeSent {
		if err := s.notifier.Notify(ctx, sub); err != nil {
			log.Printf("contact: failed to announce submission %s: %v", sub.ID, err)
		}
	}
}
