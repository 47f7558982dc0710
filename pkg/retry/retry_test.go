package retry_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/retry"
)

func quiet() retry.Options {
	return retry.Options{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, quiet())

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoExhausts(t *testing.T) {
	cause := errors.New("disk full")
	calls := 0
	err := retry.Do(context.Background(), func(context.Context) error {
		calls++
		return cause
	}, quiet())

	require.Error(t, err)
	assert.ErrorIs(t, err, retry.ErrExhausted)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanent(t *testing.T) {
	cause := errors.New("invalid input")
	calls := 0
	err := retry.Do(context.Background(), func(context.Context) error {
		calls++
		return retry.Permanent(cause)
	}, quiet())

	assert.Equal(t, cause, err)
	assert.Equal(t, 1, calls)
}

func TestDoHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opts := quiet()
	opts.InitialDelay = time.Hour
	opts.MaxDelay = time.Hour

	calls := 0
	err := retry.Do(ctx, func(context.Context) error {
		calls++
		cancel()
		return errors.New("transient")
	}, opts)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPermanentNil(t *testing.T) {
	assert.NoError(t, retry.Permanent(nil))
}
