package in

import (
	"context"

	"poolwatch/internal/modules/watch/dto"
)

// Usecase mirrors the pool registry's latest readings to a message broker.
type Usecase interface {
	// Run blocks until ctx is done. It returns nil on cancellation.
	Run(ctx context.Context) error
	Stats() dto.StatsOutput
}
