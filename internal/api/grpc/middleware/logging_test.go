package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/texcode-accounts/internal/testutil"
)

func TestLogging_HandleGRPC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    grpc.UnaryHandler
		wantStatus string
		wantFailed bool
	}{
		{
			name: "handler succeeds",
			handler: func(ctx context.Context, req any) (any, error) {
				return "ok", nil
			},
			wantStatus: "status=OK",
		},
		{
			name: "status error keeps its code",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, status.Error(codes.AlreadyExists, "email already registered")
			},
			wantStatus: "status=AlreadyExists",
			wantFailed: true,
		},
		{
			name: "plain error is logged as Internal",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, errors.New("boom")
			},
			wantStatus: "status=Internal",
			wantFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, buf := testutil.MakeBufferLogger()
			lg := NewLogging(l)
			info := &grpc.UnaryServerInfo{FullMethod: "/texcode.accounts.v1.Accounts/Register"}

			resp, err := lg.HandleGRPC(context.Background(), struct{}{}, info, tt.handler)

			out := buf.String()
			assert.Contains(t, out, "gRPC request started")
			assert.Contains(t, out, "method=/texcode.accounts.v1.Accounts/Register")
			assert.Contains(t, out, tt.wantStatus)

			if !tt.wantFailed {
				assert.NoError(t, err)
				assert.Equal(t, "ok", resp)
				assert.NotContains(t, out, "gRPC request failed")
				return
			}
			assert.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, out, "gRPC request failed")
		})
	}
}

func TestLogging_RequestID(t *testing.T) {
	l, buf := testutil.MakeBufferLogger()
	lg := NewLogging(l)
	info := &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}
	ok := func(ctx context.Context, req any) (any, error) { return "ok", nil }

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-123"))
	_, err := lg.HandleGRPC(ctx, nil, info, ok)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "request_id=req-123")

	buf.Reset()
	_, err = lg.HandleGRPC(context.Background(), nil, info, ok)
	assert.NoError(t, err)
	assert.Regexp(t, `request_id=[0-9a-f-]{36}`, buf.String())
}
