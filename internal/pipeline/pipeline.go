// Package pipeline wires the full flow: generate synthetic responses,
// extract a baseline theme mapping, vary it, compare the two mappings, and
// write every artifact plus the natural-language summary. Stages run
// in-process and sequentially; each consumes the previous stage's output
// value.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"themediff/internal/compare"
	"themediff/internal/config"
	"themediff/internal/extract"
	"themediff/internal/generate"
	"themediff/internal/logging"
	"themediff/internal/mapping"
	"themediff/internal/store"
	"themediff/internal/vary"
)

// Pipeline runs the complete generation-to-summary flow.
type Pipeline struct {
	cfg    *config.Config
	client generate.ChatClient // nil: reuse the existing responses file
	store  store.Store         // nil: run history disabled
	log    *slog.Logger
}

// New builds a Pipeline. client may be nil to skip generation and start
// from cfg's existing responses file; st may be nil to skip run recording.
func New(cfg *config.Config, client generate.ChatClient, st store.Store) *Pipeline {
	return &Pipeline{cfg: cfg, client: client, store: st, log: logging.New("pipeline")}
}

// StageTiming records one stage's wall-clock duration.
type StageTiming struct {
	Name     string
	Duration time.Duration
}

// RunResult is the pipeline outcome: the comparison result, the rendered
// summary, the recorded run ID (0 when the store is disabled), and
// per-stage timings.
type RunResult struct {
	Result  *compare.Result
	Summary string
	RunID   int64
	Timings []StageTiming
}

// Run executes all stages and writes artifacts under cfg.DataDir.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	p.log.Info("starting pipeline",
		"response_count", p.cfg.ResponseCount,
		"variation_level", p.cfg.VariationLevel,
		"seed", p.cfg.Seed)

	rng := rand.New(rand.NewSource(p.cfg.Seed))
	out := &RunResult{}

	responses, err := timed(out, "generate", func() ([]string, error) {
		return p.obtainResponses(ctx, rng)
	})
	if err != nil {
		return nil, err
	}
	p.log.Info("responses ready", "count", len(responses))

	mapping1, err := timed(out, "extract", func() (mapping.Mapping, error) {
		x := extract.New(p.cfg.Themes, rng)
		m := x.Extract(responses)
		x.LogDistribution(m)
		return m, mapping.WriteFile(m, p.cfg.Mapping1Path())
	})
	if err != nil {
		return nil, err
	}

	mapping2, err := timed(out, "vary", func() (mapping.Mapping, error) {
		m := vary.New(p.cfg.VariationLevel, rng).Vary(mapping1)
		return m, mapping.WriteFile(m, p.cfg.Mapping2Path())
	})
	if err != nil {
		return nil, err
	}

	result, err := timed(out, "compare", func() (*compare.Result, error) {
		r, err := compare.Compare(mapping1, mapping2)
		if err != nil {
			return nil, err
		}
		return r, compare.WriteResultFile(r, p.cfg.ResultsPath())
	})
	if err != nil {
		return nil, err
	}
	out.Result = result

	_, err = timed(out, "summarize", func() (struct{}, error) {
		out.Summary = compare.Summary(result, len(mapping1))
		return struct{}{}, compare.WriteSummaryFile(out.Summary, p.cfg.SummaryPath())
	})
	if err != nil {
		return nil, err
	}

	if p.store != nil {
		id, err := p.store.SaveRun(&store.Run{
			EntryCount:     result.EntryCount,
			VariationLevel: p.cfg.VariationLevel,
			Seed:           p.cfg.Seed,
			MeanJaccard:    result.JaccardSimilarity.Mean,
			AgreementPct:   result.ResponseAgreement.Percentage,
			MeanKappa:      result.CohenKappa.Mean,
			Additions:      result.ThemeChanges.Additions,
			Removals:       result.ThemeChanges.Removals,
			Replacements:   result.ThemeChanges.Replacements,
			ArtifactDir:    p.cfg.DataDir,
		})
		if err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
		out.RunID = id
	}

	for _, t := range out.Timings {
		p.log.Info("stage complete", "stage", t.Name, "duration", t.Duration)
	}
	p.log.Info("pipeline complete",
		"mean_jaccard", result.JaccardSimilarity.Mean,
		"agreement_pct", result.ResponseAgreement.Percentage,
		"mean_kappa", result.CohenKappa.Mean)
	return out, nil
}

// obtainResponses generates fresh responses when a client is wired, else
// loads the existing responses artifact.
func (p *Pipeline) obtainResponses(ctx context.Context, rng *rand.Rand) ([]string, error) {
	if p.client == nil {
		p.log.Info("no generation client, loading existing responses", "path", p.cfg.ResponsesPath())
		return mapping.LoadResponses(p.cfg.ResponsesPath())
	}
	g := generate.New(p.client, p.cfg.Question, rng,
		generate.WithBatchSize(p.cfg.BatchSize),
		generate.WithParallel(p.cfg.Parallel))
	responses, err := g.Generate(ctx, p.cfg.ResponseCount)
	if err != nil {
		return nil, fmt.Errorf("generate responses: %w", err)
	}
	if err := mapping.WriteResponses(responses, p.cfg.ResponsesPath()); err != nil {
		return nil, err
	}
	return responses, nil
}

// timed runs fn and appends its wall-clock duration to out.Timings.
func timed[T any](out *RunResult, name string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	out.Timings = append(out.Timings, StageTiming{Name: name, Duration: time.Since(start)})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s stage: %w", name, err)
	}
	return v, nil
}
