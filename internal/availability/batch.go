package availability

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"namolux/pkg/domain"
)

// CheckBatch resolves a list of domains with a fixed pool of workers pulling
// from a shared cursor, so large candidate pools never fan out unbounded.
// Domains are deduplicated case-insensitively before dispatch; the result
// slice is positionally aligned to the deduplicated input order and holds
// exactly one entry per unique domain.
func (r *Resolver) CheckBatch(ctx context.Context, fqdns []string) []domain.AvailabilityCheckResult {
	unique := dedupeDomains(fqdns)
	results := make([]domain.AvailabilityCheckResult, len(unique))
	if len(unique) == 0 {
		return results
	}

	workers := r.opts.Concurrency
	if workers > len(unique) {
		workers = len(unique)
	}

	var cursor atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(cursor.Add(1)) - 1
				if i >= len(unique) {
					return
				}
				results[i] = r.Check(ctx, unique[i])
			}
		}()
	}
	wg.Wait()

	return results
}

// dedupeDomains lowercases, trims and deduplicates while preserving first
// occurrence order.
func dedupeDomains(fqdns []string) []string {
	seen := make(map[string]bool, len(fqdns))
	var unique []string
	for _, f := range fqdns {
		key := strings.ToLower(strings.TrimSpace(f))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, key)
	}

	return unique
}
