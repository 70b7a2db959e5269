// Package generate produces synthetic consultation responses through a
// chat-completion API. Responses are generated in batches with rotating
// diversity parameters (perspective, length, focus), retried with
// exponential backoff on rate limits, then deduplicated.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"

	"themediff/internal/logging"
)

const (
	defaultBatchSize  = 25
	maxRetries        = 3
	initialRetryDelay = 1 * time.Second
	maxRetryDelay     = 10 * time.Second
)

var (
	perspectives = []string{"parent", "teacher", "student", "community member", "education professional"}
	lengths      = []string{"short", "medium", "long"}
	focuses = []string{
		"curriculum", "technology", "teaching methods", "facilities",
		"inclusivity", "assessment", "extracurricular activities",
		"teacher support", "parent involvement", "funding",
	}
)

// Generator produces synthetic responses to a consultation question.
type Generator struct {
	client    ChatClient
	question  string
	batchSize int
	parallel  int
	rng       *rand.Rand
	sleep     func(time.Duration) // replaceable in tests
	log       *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithBatchSize overrides the per-request batch size.
func WithBatchSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.batchSize = n
		}
	}
}

// WithParallel sets the number of concurrent batch requests (default 1).
func WithParallel(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.parallel = n
		}
	}
}

// New returns a Generator for the given question. rng drives the rotation
// of diversity parameters and the backoff jitter; it is owned by the
// caller and must not be shared with concurrent users.
func New(client ChatClient, question string, rng *rand.Rand, opts ...Option) *Generator {
	g := &Generator{
		client:    client,
		question:  question,
		batchSize: defaultBatchSize,
		parallel:  1,
		rng:       rng,
		sleep:     time.Sleep,
		log:       logging.New("generate"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// batchSpec is one batch request with its diversity parameters, decided
// up front so the rng is only touched from the caller's goroutine.
type batchSpec struct {
	index       int
	size        int
	perspective string
	length      string
	focus       string
	jitter      []float64 // backoff jitter factors, one per retry
}

// Generate produces exactly total unique responses (fewer only if the API
// keeps under-delivering). Batches run with bounded parallelism.
func (g *Generator) Generate(ctx context.Context, total int) ([]string, error) {
	if total <= 0 {
		return nil, nil
	}
	specs := g.planBatches(total)
	g.log.Info("generating responses", "total", total, "batches", len(specs), "parallel", g.parallel)

	results := make([][]string, len(specs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.parallel)
	for _, spec := range specs {
		spec := spec
		eg.Go(func() error {
			batch, err := g.generateBatch(ctx, spec)
			if err != nil {
				return fmt.Errorf("batch %d: %w", spec.index+1, err)
			}
			results[spec.index] = batch
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []string
	for _, batch := range results {
		all = append(all, batch...)
	}
	unique := Dedupe(all)
	if len(unique) > total {
		unique = unique[:total]
	}
	g.log.Info("generation complete", "generated", len(all), "unique", len(unique))
	return unique, nil
}

func (g *Generator) planBatches(total int) []batchSpec {
	batches := (total + g.batchSize - 1) / g.batchSize
	specs := make([]batchSpec, 0, batches)
	remaining := total
	for i := 0; i < batches; i++ {
		size := g.batchSize
		if remaining < size {
			size = remaining
		}
		remaining -= size
		spec := batchSpec{index: i, size: size}
		// Each diversity axis applies with probability 0.7.
		if g.rng.Float64() > 0.3 {
			spec.perspective = perspectives[g.rng.Intn(len(perspectives))]
		}
		if g.rng.Float64() > 0.3 {
			spec.length = lengths[g.rng.Intn(len(lengths))]
		}
		if g.rng.Float64() > 0.3 {
			spec.focus = focuses[g.rng.Intn(len(focuses))]
		}
		spec.jitter = make([]float64, maxRetries)
		for a := range spec.jitter {
			spec.jitter[a] = 0.8 + 0.4*g.rng.Float64()
		}
		specs = append(specs, spec)
	}
	return specs
}

func (g *Generator) generateBatch(ctx context.Context, spec batchSpec) ([]string, error) {
	system := "You are generating synthetic consultation responses to a public education survey. " +
		"Generate diverse, realistic responses that reflect a wide range of opinions, backgrounds, and priorities."
	user := g.buildPrompt(spec)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		content, err := g.client.Complete(ctx, system, user)
		if err == nil {
			responses, perr := ParseResponses(content)
			if perr != nil {
				return nil, perr
			}
			g.log.Info("batch generated", "batch", spec.index+1, "responses", len(responses),
				"perspective", spec.perspective, "length", spec.length, "focus", spec.focus)
			return responses, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == maxRetries-1 {
			break
		}
		delay := backoffDelay(err, attempt, spec.jitter[attempt])
		g.log.Warn("batch request failed, retrying",
			"batch", spec.index+1, "attempt", attempt+1, "delay", delay, "error", err)
		g.sleep(delay)
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (g *Generator) buildPrompt(spec batchSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d diverse, realistic responses to the following consultation question:\n\n", spec.size)
	fmt.Fprintf(&b, "%q\n\n", g.question)
	if spec.perspective != "" {
		fmt.Fprintf(&b, "Generate responses from the perspective of %ss. ", spec.perspective)
	}
	switch spec.length {
	case "short":
		b.WriteString("Keep responses brief (1-2 sentences). ")
	case "medium":
		b.WriteString("Make responses moderately detailed (3-5 sentences). ")
	case "long":
		b.WriteString("Create detailed responses with multiple paragraphs. ")
	}
	if spec.focus != "" {
		fmt.Fprintf(&b, "Focus responses on aspects related to %s. ", spec.focus)
	}
	b.WriteString("\nEnsure responses are diverse, realistic, and reflect a range of opinions. ")
	b.WriteString("Make sure each response is unique and different from the others. ")
	b.WriteString(`Format the output as a JSON object with a "responses" key holding an array of strings, each string being a separate response.`)
	return b.String()
}

// backoffDelay computes the retry delay: exponential with a jitter factor
// for rate limits, a gentler ramp for other transient failures.
func backoffDelay(err error, attempt int, jitter float64) time.Duration {
	if isRateLimit(err) {
		delay := initialRetryDelay << attempt
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
		return time.Duration(float64(delay) * jitter)
	}
	return time.Duration(float64(initialRetryDelay) * pow15(attempt))
}

func pow15(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 1.5
	}
	return v
}

func isRateLimit(err error) bool {
	var apiErr *openai.APIError
	return errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429
}

// ParseResponses extracts the generated strings from a JSON-object reply.
// The "responses" key is preferred; otherwise the first value that is an
// array of strings is used.
func ParseResponses(content string) ([]string, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("parse completion JSON: %w", err)
	}
	if raw, ok := payload["responses"]; ok {
		var responses []string
		if err := json.Unmarshal(raw, &responses); err == nil {
			return responses, nil
		}
	}
	for _, raw := range payload {
		var responses []string
		if err := json.Unmarshal(raw, &responses); err == nil {
			return responses, nil
		}
	}
	return nil, fmt.Errorf("completion JSON has no array of strings")
}

// Dedupe removes duplicate responses, comparing case-insensitively after
// trimming whitespace, preserving first occurrence order.
func Dedupe(responses []string) []string {
	seen := make(map[string]bool, len(responses))
	unique := make([]string, 0, len(responses))
	for _, r := range responses {
		normalized := strings.ToLower(strings.TrimSpace(r))
		if !seen[normalized] {
			seen[normalized] = true
			unique = append(unique, r)
		}
	}
	return unique
}
