package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/soham247/stellar-portfolio/internal/contact"
)

// ContactEvent announces a delivered contact form message. The message body
// is left out; it stays with the relay and the submission store.
type ContactEvent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Timestamp string `json:"timestamp"`
}

// Publisher sends a payload to a topic. *Client is a Publisher.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload any) error
}

// Notifier publishes a ContactEvent for every delivered submission.
type Notifier struct {
	pub   Publisher
	topic string
}

// NewNotifier creates a notifier publishing on topic, or DefaultTopic when
// topic is empty.
func NewNotifier(pub Publisher, topic string) *Notifier {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Notifier{pub: pub, topic: topic}
}

// NewContactEvent builds the event for sub.
func NewContactEvent(sub contact.Submission) ContactEvent {
	return ContactEvent{
		ID:        sub.ID,
		Name:      sub.Form.Name,
		Email:     sub.Form.Email,
		Subject:   sub.Form.Subject,
		Timestamp: sub.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Notify implements contact.Notifier.
func (n *Notifier) Notify(_ context.Context, sub contact.Submission) error {
	eventJSON, err := json.Marshal(NewContactEvent(sub))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshalEvent, err)
	}
	return n.pub.Publish(n.topic, 1, false, eventJSON)
}
