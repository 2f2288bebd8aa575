package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"tracking-service/internal/model"
)

// Publisher pushes committed violation records to downstream consumers.
// Publication is best-effort and happens after the submission has been
// committed; a failed publish never rolls back the ledger.
type Publisher interface {
	PublishViolation(violation model.Violation) error
	Close()
}

type natsPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
	log           zerolog.Logger
}

// NewNATSPublisher connects to the given NATS URL. Subjects are
// "<prefix>.violations.<assetID>".
func NewNATSPublisher(url, subjectPrefix string, log zerolog.Logger) (Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("tracking-service"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &natsPublisher{conn: conn, subjectPrefix: subjectPrefix, log: log}, nil
}

func (p *natsPublisher) PublishViolation(violation model.Violation) error {
	payload, err := json.Marshal(violation)
	if err != nil {
		return fmt.Errorf("marshal violation: %w", err)
	}
	subject := fmt.Sprintf("%s.violations.%s", p.subjectPrefix, violation.AssetID)
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish violation: %w", err)
	}
	return nil
}

func (p *natsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.log.Warn().Err(err).Msg("nats drain failed")
	}
}

type noopPublisher struct{}

// NewNoopPublisher is used when no NATS URL is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishViolation(model.Violation) error { return nil }

func (noopPublisher) Close() {}
