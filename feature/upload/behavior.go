package upload

import (
	"context"

	"market-tracker/feature/upload/models"

	"go.uber.org/zap"
)

// Upload is one authenticated upload in flight: the payload, the source
// it came from, and the uploader's hashed identifier when the client
// reported one.
type Upload struct {
	Source     *models.TrustedSource
	Payload    *models.Payload
	UploaderID string
}

// Behavior is one step of the upload pipeline. A behavior inspects the
// payload to decide whether it applies, then performs its writes.
type Behavior interface {
	// Name identifies the behavior in logs.
	Name() string
	// ShouldExecute reports whether the payload carries this behavior's
	// section.
	ShouldExecute(up *Upload) bool
	// Execute performs the behavior's writes.
	Execute(ctx context.Context, up *Upload) error
}

// Chain runs behaviors in registration order. The first failing behavior
// aborts the upload; later behaviors do not run, so a payload is either
// fully applied through some prefix of the chain or rejected at the step
// that could not store it.
type Chain struct {
	behaviors []Behavior
	logger    *zap.Logger
}

// NewChain creates a behavior chain.
func NewChain(logger *zap.Logger, behaviors ...Behavior) *Chain {
	return &Chain{behaviors: behaviors, logger: logger}
}

// Run applies every matching behavior to the upload.
func (c *Chain) Run(ctx context.Context, up *Upload) error {
	for _, b := range c.behaviors {
		if !b.ShouldExecute(up) {
			continue
		}
		if err := b.Execute(ctx, up); err != nil {
			c.logger.Warn("Upload behavior failed",
				zap.String("behavior", b.Name()),
				zap.String("source", up.Source.Name),
				zap.Error(err))
			return err
		}
	}
	return nil
}
