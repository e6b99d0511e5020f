package upload_test

import (
	"context"
	"errors"
	"testing"

	"market-tracker/feature/upload"
	"market-tracker/feature/upload/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testUpload() *upload.Upload {
	return &upload.Upload{
		Source:  &models.TrustedSource{Name: "stub"},
		Payload: &models.Payload{},
	}
}

type stubBehavior struct {
	name     string
	applies  bool
	err      error
	executed bool
}

func (b *stubBehavior) Name() string { return b.name }

func (b *stubBehavior) ShouldExecute(*upload.Upload) bool { return b.applies }

func (b *stubBehavior) Execute(context.Context, *upload.Upload) error {
	b.executed = true
	return b.err
}

func TestChainRunsMatchingBehaviorsInOrder(t *testing.T) {
	first := &stubBehavior{name: "first", applies: true}
	skipped := &stubBehavior{name: "skipped", applies: false}
	last := &stubBehavior{name: "last", applies: true}

	chain := upload.NewChain(zap.NewNop(), first, skipped, last)
	err := chain.Run(context.Background(), testUpload())
	assert.NoError(t, err)

	assert.True(t, first.executed)
	assert.False(t, skipped.executed)
	assert.True(t, last.executed)
}

func TestChainStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	first := &stubBehavior{name: "first", applies: true}
	failing := &stubBehavior{name: "failing", applies: true, err: boom}
	never := &stubBehavior{name: "never", applies: true}

	chain := upload.NewChain(zap.NewNop(), first, failing, never)
	err := chain.Run(context.Background(), testUpload())
	assert.ErrorIs(t, err, boom)

	assert.True(t, first.executed)
	assert.True(t, failing.executed)
	assert.False(t, never.executed)
}
