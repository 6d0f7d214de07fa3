package sqlc

import (
	"net"
	"time"
)

const (
	QuerierCtxTimeout = time.Second * 10
)

type DbManager struct {
	Analytics *AnalyticsManager
}

// NewDbManager returns nil when there is no database configured.
func NewDbManager(queries Querier, ipnet net.IPNet) *DbManager {
	if queries == nil {
		return nil
	}
	return &DbManager{
		Analytics: NewAnalyticsManager(queries, ipnet),
	}
}
