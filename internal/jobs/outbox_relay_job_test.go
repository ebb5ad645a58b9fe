package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRelayHandler struct {
	mock.Mock
}

func (m *MockRelayHandler) Handle(ctx context.Context, cmd commands.RelayOrderEventsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOutboxRelayJob_RunOnce_UsesBatchSize(t *testing.T) {
	handler := new(MockRelayHandler)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RelayOrderEventsCommand) bool {
		return cmd.BatchSize() == 25
	})).Return(3, nil).Once()

	jobs.NewOutboxRelayJob(handler, 25, discardLogger()).RunOnce(t.Context())

	handler.AssertExpectations(t)
}

func TestOutboxRelayJob_RunOnce_DefaultBatchSize(t *testing.T) {
	handler := new(MockRelayHandler)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RelayOrderEventsCommand) bool {
		return cmd.BatchSize() == jobs.DefaultRelayBatchSize
	})).Return(0, nil).Once()

	jobs.NewOutboxRelayJob(handler, 0, discardLogger()).RunOnce(t.Context())

	handler.AssertExpectations(t)
}

func TestOutboxRelayJob_RunOnce_SwallowsHandlerError(t *testing.T) {
	handler := new(MockRelayHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("broker unavailable")).Once()

	assert.NotPanics(t, func() {
		jobs.NewOutboxRelayJob(handler, 10, discardLogger()).RunOnce(t.Context())
	})
	handler.AssertExpectations(t)
}

func TestOutboxRelayJob_StartStop(t *testing.T) {
	handler := new(MockRelayHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	job := jobs.NewOutboxRelayJob(handler, 10, discardLogger())
	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager(t *testing.T) {
	t.Run("without relay handler", func(t *testing.T) {
		jm := jobs.NewJobManager(nil, 0, discardLogger())

		assert.Zero(t, jm.Len())
		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})

	t.Run("with relay handler", func(t *testing.T) {
		handler := new(MockRelayHandler)
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()
		jm := jobs.NewJobManager(handler, 10, discardLogger())

		assert.Equal(t, 1, jm.Len())
		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})
}
