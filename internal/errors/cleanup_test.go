package errors

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockCloser struct {
	closeErr error
	closed   bool
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.closeErr
}

type mockShutdowner struct {
	err         error
	hadDeadline bool
}

func (m *mockShutdowner) Shutdown(ctx context.Context) error {
	_, m.hadDeadline = ctx.Deadline()
	return m.err
}

func TestDeferClose(t *testing.T) {
	tests := []struct {
		name       string
		closer     io.Closer
		wantLogged bool
	}{
		{
			name:       "nil closer",
			closer:     nil,
			wantLogged: false,
		},
		{
			name:       "successful close",
			closer:     &mockCloser{},
			wantLogged: false,
		},
		{
			name:       "close with error",
			closer:     &mockCloser{closeErr: errors.New("close failed")},
			wantLogged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			DeferClose(logger, tt.closer, "test close")

			if tt.closer != nil {
				mc := tt.closer.(*mockCloser)
				if !mc.closed {
					t.Error("Close() was not called")
				}
			}

			logged := buf.Len() > 0
			if logged != tt.wantLogged {
				t.Errorf("logged = %v, want %v (output: %s)", logged, tt.wantLogged, buf.String())
			}
		})
	}
}

func TestDeferShutdown(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var buf bytes.Buffer
		s := &mockShutdowner{}

		DeferShutdown(zerolog.New(&buf), s, time.Second, "shutdown")

		if !s.hadDeadline {
			t.Error("expected shutdown context to carry a deadline")
		}
		if buf.Len() != 0 {
			t.Errorf("unexpected log output: %s", buf.String())
		}
	})

	t.Run("failure is logged", func(t *testing.T) {
		var buf bytes.Buffer
		s := &mockShutdowner{err: errors.New("busy")}

		DeferShutdown(zerolog.New(&buf), s, time.Second, "shutdown")

		if !bytes.Contains(buf.Bytes(), []byte("busy")) {
			t.Errorf("expected error in log, got %s", buf.String())
		}
	})

	t.Run("nil shutdowner", func(t *testing.T) {
		DeferShutdown(zerolog.Nop(), nil, time.Second, "shutdown")
	})
}
