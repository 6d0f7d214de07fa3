package sqlc

import (
	"context"
	"database/sql"
	"errors"
	"net"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager counts games and rematches per server address.
// It never stores game state.
type AnalyticsManager struct {
	queries  Querier
	serverIp pqtype.Inet
}

func NewAnalyticsManager(queries Querier, ipnet net.IPNet) *AnalyticsManager {
	return &AnalyticsManager{
		queries:  queries,
		serverIp: pqtype.Inet{IPNet: ipnet, Valid: true},
	}
}

func (a *AnalyticsManager) ServerIp() pqtype.Inet {
	return a.serverIp
}

func (a *AnalyticsManager) RecordGameCreated(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.IncrementGamesCreatedCount(ctx, a.serverIp)
}

func (a *AnalyticsManager) RecordRematch(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.IncrementRematchCalledCount(ctx, a.serverIp)
}

// Counts returns zeros when this server has no row yet.
func (a *AnalyticsManager) Counts(ctx context.Context) (gamesCreated, rematchCalled int64, err error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	gamesCreated, err = a.queries.GetGamesCreatedCount(ctx, a.serverIp)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}

	rematchCalled, err = a.queries.GetRematchCalledCount(ctx, a.serverIp)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, 0, err
	}
	return gamesCreated, rematchCalled, nil
}
