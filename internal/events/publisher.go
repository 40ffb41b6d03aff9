package events

import (
	"context"
	"errors"
)

type nopPublisher struct{}

// Nop ничего не публикует
func Nop() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, Event) error { return nil }

// Multi рассылает событие во все publishers; ошибки собираются, доставка не прерывается
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
