// Package auth resolves the caller of every sea battle call from its bearer
// token.
package auth

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/seabattle/internal/platform/errors"
	"github.com/louisbranch/seabattle/internal/platform/errors/i18n"
	"github.com/louisbranch/seabattle/internal/platform/requestctx"
	"github.com/louisbranch/seabattle/internal/services/auth/identity"
	"github.com/louisbranch/seabattle/internal/services/game/api/grpc/metadata"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpcmetadata "google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// AuthorizationHeader carries the token when the request message has none.
const AuthorizationHeader = "authorization"

// guardedPrefix scopes token checks to sea battle services. Health and
// reflection stay open.
const guardedPrefix = "/seabattle."

// tokenGetter extracts the bearer token from request messages.
type tokenGetter interface {
	GetToken() string
}

// UnaryServerInterceptor resolves the request token into a username stored in
// context. Unresolvable tokens fail with Unauthenticated.
func UnaryServerInterceptor(resolver identity.Resolver) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !strings.HasPrefix(info.FullMethod, guardedPrefix) {
			return handler(ctx, req)
		}
		if resolver == nil {
			return nil, status.Error(codes.Internal, "identity resolver is not configured")
		}

		username, err := resolver.Resolve(tokenFromRequest(ctx, req))
		if err != nil {
			return nil, unauthenticated(ctx, err)
		}
		return handler(requestctx.WithUsername(ctx, username), req)
	}
}

func tokenFromRequest(ctx context.Context, req any) string {
	if getter, ok := req.(tokenGetter); ok {
		if token := strings.TrimSpace(getter.GetToken()); token != "" {
			return token
		}
	}
	md, _ := grpcmetadata.FromIncomingContext(ctx)
	return metadata.FirstMetadataValue(md, AuthorizationHeader)
}

func unauthenticated(ctx context.Context, err error) error {
	domainErr, ok := apperrors.As(err)
	if !ok {
		domainErr = apperrors.Wrap(apperrors.CodeInvalidToken, "resolve token", err)
	}
	catalog := i18n.GetCatalog(metadata.LocaleFromContext(ctx))
	return domainErr.ToGRPCStatus(catalog.Locale(), catalog.Format(string(domainErr.Code), domainErr.Metadata))
}
