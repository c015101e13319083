package generator

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"golang.org/x/sync/errgroup"

	"github.com/promptloom-dev/promptloom/internal/profile"
)

// MaxBatchCount caps a single batch run.
const MaxBatchCount = 100

// DefaultSeparator joins batch items in the plain text rendering.
const DefaultSeparator = "\n---\n"

// FilterEnv defines the variables available to --where expressions, evaluated
// against each generated item.
type FilterEnv struct {
	Index int    `expr:"index"`
	Text  string `expr:"text"`
	Seed  uint32 `expr:"seed"`
}

// BatchRequest describes a batch run over consecutive indices.
type BatchRequest struct {
	ProfileID string
	Seed      uint32
	Start     int32
	Count     int
	Where     string // optional expr predicate over FilterEnv
	Workers   int    // 0 means one per CPU
}

// Item is one generated entry of a batch.
type Item struct {
	Index int32  `json:"index"`
	Text  string `json:"text"`
}

// BatchResult is the outcome of a batch run. Items are in index order;
// Generated counts items before the Where predicate was applied.
type BatchResult struct {
	RunID     RunID         `json:"run_id"`
	ProfileID string        `json:"profile,omitempty"`
	Seed      uint32        `json:"seed"`
	Start     int32         `json:"start"`
	Generated int           `json:"generated"`
	Items     []Item        `json:"items"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Batch generates req.Count prompts at consecutive indices, fanned out over a
// bounded worker pool. Determinism makes reassembly trivial: each index writes
// its own slot. The optional Where predicate is compiled once and filters the
// assembled items without disturbing their order.
func Batch(ctx context.Context, p *profile.Profile, req BatchRequest, opts ...Option) (*BatchResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if req.Count < 1 || req.Count > MaxBatchCount {
		return nil, fmt.Errorf("batch count must be between 1 and %d, got %d", MaxBatchCount, req.Count)
	}
	if int64(req.Start)+int64(req.Count)-1 > math.MaxInt32 {
		return nil, fmt.Errorf("batch range %d..%d overflows the index space", req.Start, int64(req.Start)+int64(req.Count)-1)
	}

	keep := func(FilterEnv) (bool, error) { return true, nil }
	if req.Where != "" {
		program, err := expr.Compile(req.Where, expr.Env(FilterEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("invalid where expression: %w\nExample: index %% 2 == 0 && len(text) < 80", err)
		}
		keep = func(env FilterEnv) (bool, error) {
			out, err := expr.Run(program, env)
			if err != nil {
				return false, fmt.Errorf("where expression: %w", err)
			}
			return out.(bool), nil
		}
	}

	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > req.Count {
		workers = req.Count
	}

	started := time.Now()
	texts := make([]string, req.Count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < req.Count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			texts[i] = generate(p, req.Seed, req.Start+int32(i), cfg).Text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]Item, 0, req.Count)
	for i, text := range texts {
		idx := req.Start + int32(i)
		ok, err := keep(FilterEnv{Index: int(idx), Text: text, Seed: req.Seed})
		if err != nil {
			return nil, err
		}
		if ok {
			items = append(items, Item{Index: idx, Text: text})
		}
	}

	return &BatchResult{
		RunID:     NewRunID(),
		ProfileID: req.ProfileID,
		Seed:      req.Seed,
		Start:     req.Start,
		Generated: req.Count,
		Items:     items,
		StartedAt: started,
		Duration:  time.Since(started),
	}, nil
}

// Join renders the items as plain text separated by sep. An empty sep uses
// DefaultSeparator.
func (b *BatchResult) Join(sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	parts := make([]string, len(b.Items))
	for i, item := range b.Items {
		parts[i] = item.Text
	}
	return strings.Join(parts, sep)
}

// Numbered renders the items as "[i] text" lines, numbering by position
// within this batch rather than by absolute index.
func (b *BatchResult) Numbered() string {
	var sb strings.Builder
	for i, item := range b.Items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[%d] %s", i, item.Text)
	}
	return sb.String()
}
