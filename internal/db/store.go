package db

import (
	"context"

	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/pkg"
)

// HistoryStore persists exchanges best-effort.  Records are write-only: the
// system never reads them back.  Callers must swallow and log any error; a
// failed write never affects the reply.
type HistoryStore interface {
	SaveExchange(ctx context.Context, rec pkg.HistoryRecord) error
	Close() error
}

// NoopStore is the fully degraded store used when no backend is reachable.
type NoopStore struct{}

func (NoopStore) SaveExchange(context.Context, pkg.HistoryRecord) error { return nil }
func (NoopStore) Close() error                                          { return nil }
