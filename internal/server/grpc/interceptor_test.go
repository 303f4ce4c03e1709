package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	pb "github.com/dmitrijs2005/vaultkeeper/internal/proto"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/auth"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const userID = "6f1c1a9e-5a43-4d3e-9c3a-0d7d1f0b2a11"

var addInfo = &grpc.UnaryServerInfo{FullMethod: pb.ResourceService_AddResource_FullMethodName}

func tokenCtx(t *testing.T, secret string, validity time.Duration) context.Context {
	t.Helper()
	tok, err := auth.GenerateToken(identity.AccessControl{UserID: userID}, []byte(secret), validity)
	require.NoError(t, err)
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, tok))
}

func TestInterceptor_UnprotectedMethodPassesThrough(t *testing.T) {
	s := newTestServer(&fakeAdder{})
	called := false

	resp, err := s.accessTokenInterceptor(context.Background(), nil,
		&grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"},
		func(ctx context.Context, req any) (any, error) {
			called = true
			return "ok", nil
		})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", resp)
}

func TestInterceptor_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		wantMsg string
	}{
		{"missing token", context.Background(), "missing token"},
		{"garbage token", metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, "not-a-jwt")), "invalid token"},
		{"wrong secret", tokenCtx(t, "other", time.Minute), "invalid token"},
		{"expired", tokenCtx(t, testSecret, -time.Minute), "invalid token"},
	}

	s := newTestServer(&fakeAdder{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.accessTokenInterceptor(tt.ctx, nil, addInfo, func(context.Context, any) (any, error) {
				t.Fatal("handler must not run")
				return nil, nil
			})
			require.Equal(t, codes.Unauthenticated, status.Code(err))
			assert.Equal(t, tt.wantMsg, status.Convert(err).Message())
		})
	}
}

func TestInterceptor_InjectsAccessControl(t *testing.T) {
	s := newTestServer(&fakeAdder{})

	_, err := s.accessTokenInterceptor(tokenCtx(t, testSecret, time.Minute), nil, addInfo,
		func(ctx context.Context, req any) (any, error) {
			uac, ok := identity.FromContext(ctx)
			require.True(t, ok)
			assert.Equal(t, userID, uac.UserID)
			assert.Equal(t, identity.RoleUser, uac.Role)
			return nil, nil
		})
	require.NoError(t, err)
}
