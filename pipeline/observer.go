package pipeline

import (
	"context"
	"time"
)

// Observer is notified around every step. It cannot change the outcome.
type Observer interface {
	OnStepStart(ctx context.Context, step string)
	OnStepDone(ctx context.Context, step string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) OnStepStart(context.Context, string) {}
func (nopObserver) OnStepDone(context.Context, string, time.Duration, error) {}
