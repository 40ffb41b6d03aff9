package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/thereayou/rythmrun/internal/logging"
)

const SubjectPrefix = "rythmrun."

// Conn то, что нужно от *nats.Conn
type Conn interface {
	Publish(subj string, data []byte) error
}

type NATSPublisher struct {
	conn Conn
}

func NewNATSPublisher(conn Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

func (p *NATSPublisher) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(SubjectPrefix+e.Type, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", e.Type, err)
	}
	return nil
}

// ConnectNATS подключение с переподключениями; события соединения пишутся в лог
func ConnectNATS(url string, log logging.Logger) (*nats.Conn, error) {
	ctx := context.Background()
	nc, err := nats.Connect(url,
		nats.Name("rythmrun"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn(ctx, "nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info(ctx, "nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}
