package engine

import (
	"context"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/seabattle/internal/platform/errors"
	"github.com/louisbranch/seabattle/internal/services/game/domain/history"
	"github.com/louisbranch/seabattle/internal/services/game/storage"
	"github.com/louisbranch/seabattle/internal/services/game/storage/filter"
)

const (
	defaultHistoryPageSize = 10
	maxHistoryPageSize     = 50
	topPlayersLimit        = 3
)

// HistoryRequest selects a page of finished games.
type HistoryRequest struct {
	PageSize  int
	PageToken string
	Filter    string
}

// History lists finished games newest first.
func (e *Engine) History(ctx context.Context, req HistoryRequest) (storage.HistoryPage, error) {
	cond, err := filter.ParseHistory(req.Filter)
	if err != nil {
		return storage.HistoryPage{}, apperrors.WithMetadata(
			apperrors.CodeInvalidFilter,
			"parse history filter: "+err.Error(),
			map[string]string{"Reason": err.Error()},
		)
	}
	token := strings.TrimSpace(req.PageToken)
	if token != "" {
		if _, err := strconv.ParseInt(token, 10, 64); err != nil {
			return storage.HistoryPage{}, apperrors.WithMetadata(
				apperrors.CodeInvalidFilter,
				"page token "+strconv.Quote(token)+" is malformed",
				map[string]string{"Reason": "malformed page token"},
			)
		}
	}

	size := req.PageSize
	switch {
	case size <= 0:
		size = defaultHistoryPageSize
	case size > maxHistoryPageSize:
		size = maxHistoryPageSize
	}

	var page storage.HistoryPage
	err = e.atomically(ctx, "list history", func(tx storage.Tx) error {
		var err error
		page, err = tx.ListHistory(ctx, storage.HistoryQuery{PageSize: size, PageToken: token, Filter: cond})
		return err
	})
	return page, err
}

// TopPlayers returns the three players with the most wins.
func (e *Engine) TopPlayers(ctx context.Context) ([]history.Standing, error) {
	var standings []history.Standing
	err := e.atomically(ctx, "top players", func(tx storage.Tx) error {
		records, err := tx.ListWinners(ctx)
		if err != nil {
			return err
		}
		standings = history.TopPlayers(records, topPlayersLimit)
		return nil
	})
	return standings, err
}
