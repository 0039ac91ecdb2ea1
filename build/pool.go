package build

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency is the bounded worker pool size for Run: one
// language build job at a time per slot. Kept lower than the per-group
// compile pool (dictfile.CompileConcurrency) since a language job itself
// fans out further work at the group level.
const DefaultConcurrency = 4

// BuildSummary aggregates every language job's outcome from one Run call.
type BuildSummary struct {
	Results []LanguageResult
	Created int
	Skipped int
}

// Run builds every language in languages concurrently, bounded by
// concurrency simultaneous jobs (DefaultConcurrency if concurrency <= 0).
// Each language is an independent job: a failure in one (missing source,
// malformed line, write error) is recorded in its LanguageResult, logged
// at Warn, and does not stop or fail sibling jobs. Run's own error is
// non-nil only if the context is canceled. A nil logger is treated as
// zap.NewNop().
func Run(ctx context.Context, paths Paths, languages []string, concurrency int, buildTime uint64, logger *zap.Logger) (BuildSummary, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	sem := semaphore.NewWeighted(int64(concurrency))
	g, gCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make([]LanguageResult, 0, len(languages))

	for _, lang := range languages {
		lang := lang

		if err := sem.Acquire(gCtx, 1); err != nil {
			return BuildSummary{}, err
		}

		g.Go(func() error {
			defer sem.Release(1)

			r := buildLanguage(lang, paths, buildTime)

			switch {
			case r.Err != nil:
				logger.Warn("language build skipped", zap.String("lang", lang), zap.Error(r.Err))
			case r.Created:
				logger.Info("dictionary created", zap.String("lang", lang), zap.String("path", r.OutputPath), zap.Int("words", r.WordCount))
			default:
				logger.Info("dictionary already exists, skipping", zap.String("lang", lang), zap.String("path", r.OutputPath))
			}

			mu.Lock()
			results = append(results, r)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return BuildSummary{}, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Lang < results[j].Lang })

	summary := BuildSummary{Results: results}
	for _, r := range results {
		if r.Created {
			summary.Created++
		} else {
			summary.Skipped++
		}
	}

	return summary, nil
}
