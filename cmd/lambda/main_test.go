package main

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"bitbucket.org/sotavant/vehicle-voice-skill/internal/models"
)

type countingFlusher struct {
	calls int
	err   error
}

func (f *countingFlusher) ForceFlush(context.Context) error {
	f.calls++
	return f.err
}

func TestFlushingFlushesEveryInvocation(t *testing.T) {
	handlerErr := errors.New("boom")
	testCases := []struct {
		name     string
		err      error
		flushErr error
	}{
		{name: "ok"},
		{name: "handler_error", err: handlerErr},
		{name: "flush_error", flushErr: errors.New("collector down")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := &countingFlusher{err: tc.flushErr}
			want := &models.Response{Version: models.Version}

			h := flushing(func(context.Context, models.Request) (*models.Response, error) {
				return want, tc.err
			}, f)

			resp, err := h(context.Background(), models.Request{})
			assert.Same(t, want, resp)
			assert.Equal(t, tc.err, err)
			assert.Equal(t, 1, f.calls)
		})
	}
}
