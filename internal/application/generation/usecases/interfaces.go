package usecases

import (
	"context"

	"github.com/reelpop-inc/reelpop/internal/application/usage"
)

// QuotaLedger is the slice of the usage service the orchestrator needs.
type QuotaLedger interface {
	ReserveVideo(ctx context.Context, userID string) (*usage.LimitResult, error)
	DecrementVideoCount(ctx context.Context, userID string) error
	ReleaseHold(ctx context.Context, userID string) error
}

// VideoStorage stores generated videos under a key, overwriting existing objects.
type VideoStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

type AssetFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
