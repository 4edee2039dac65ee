package ingester

import (
	"context"
	"fmt"
)

type heightFetcher struct {
	source BlockSource
	repo   Repository
	limit  int
}

// Fetch returns the next heights to ingest in ascending order: from just above the stored tip
// (or genesis for an empty store) up to the node's latest height, at most limit of them.
func (f *heightFetcher) Fetch(ctx context.Context) ([]uint32, error) {
	latest, err := f.source.LatestHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest height: %w", err)
	}
	tip, ok, err := f.repo.Tip(ctx)
	if err != nil {
		return nil, fmt.Errorf("stored tip: %w", err)
	}

	var from uint32
	if ok {
		if tip >= latest {
			return nil, nil
		}
		from = tip + 1
	}

	count := uint64(latest) - uint64(from) + 1
	if f.limit > 0 && count > uint64(f.limit) {
		count = uint64(f.limit)
	}
	heights := make([]uint32, count)
	for i := range heights {
		heights[i] = from + uint32(i)
	}
	return heights, nil
}
