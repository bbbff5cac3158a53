package graph

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Aggregate unions every group's member list into the neighbor set of each
// of its members. Members missing from reg are skipped. Each member's own
// identity lands in its set too; Registry.Finalize removes it.
//
// With workers > 1 the persons are sharded by identity modulo workers. Every
// worker walks all groups but writes only the neighbor sets of its own shard,
// so no set is shared between goroutines and the result does not depend on
// the worker count.
func Aggregate(ctx context.Context, idx *GroupIndex, reg *Registry, workers int) error {
	if workers <= 1 {
		return aggregateShard(ctx, idx, reg, 0, 1)
	}

	g, ctx := errgroup.WithContext(ctx)
	for shard := 0; shard < workers; shard++ {
		g.Go(func() error {
			return aggregateShard(ctx, idx, reg, shard, workers)
		})
	}
	return g.Wait()
}

// aggregateShard handles the members m with m % shards == shard
func aggregateShard(ctx context.Context, idx *GroupIndex, reg *Registry, shard, shards int) error {
	seen := 0
	for _, members := range idx.groups {
		seen++
		if seen%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		for _, m := range members {
			if m%shards != shard {
				continue
			}
			if set, ok := reg.neighbors(m); ok {
				set.AddAll(members)
			}
		}
	}
	return ctx.Err()
}
