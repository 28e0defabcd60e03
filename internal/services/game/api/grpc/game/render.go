package game

import (
	"context"
	"errors"

	apperrors "github.com/louisbranch/seabattle/internal/platform/errors"
	"github.com/louisbranch/seabattle/internal/platform/errors/i18n"
	"github.com/louisbranch/seabattle/internal/services/game/api/grpc/metadata"
	gamei18n "github.com/louisbranch/seabattle/internal/services/game/i18n"
	"golang.org/x/text/message"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// describe splits err into a response-level failure and its legacy text, or
// a gRPC status error when the caller cannot correct it.
func describe(ctx context.Context, err error) (*Failure, string, error) {
	if err == nil {
		return nil, "", nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, "", status.FromContextError(err).Err()
	}
	catalog := i18n.GetCatalog(metadata.LocaleFromContext(ctx))
	domainErr, ok := apperrors.As(err)
	if !ok {
		return nil, "", status.Error(codes.Internal, err.Error())
	}
	text := catalog.Format(string(domainErr.Code), domainErr.Metadata)
	if !apperrors.IsUserFacing(err) {
		return nil, "", domainErr.ToGRPCStatus(catalog.Locale(), text)
	}
	return failureOf(domainErr), text, nil
}

// report renders any failure as response text. Cleanup calls use it so
// storage outages are reported rather than raised.
func report(ctx context.Context, err error) (*Failure, string) {
	if err == nil {
		return nil, ""
	}
	catalog := i18n.GetCatalog(metadata.LocaleFromContext(ctx))
	domainErr, ok := apperrors.As(err)
	if !ok {
		return &Failure{Kind: string(apperrors.KindInfrastructure), Code: string(apperrors.CodeUnknown)}, err.Error()
	}
	return failureOf(domainErr), catalog.Format(string(domainErr.Code), domainErr.Metadata)
}

func failureOf(err *apperrors.Error) *Failure {
	return &Failure{Kind: string(err.Kind()), Code: string(err.Code)}
}

func printer(ctx context.Context) *message.Printer {
	return gamei18n.Printer(metadata.LocaleFromContext(ctx))
}
