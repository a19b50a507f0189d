package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/exprgraph/pkg/cache"
	"github.com/matzehuels/exprgraph/pkg/dag"
	"github.com/matzehuels/exprgraph/pkg/eval"
	graphio "github.com/matzehuels/exprgraph/pkg/io"
	"github.com/matzehuels/exprgraph/pkg/observability"
	"github.com/matzehuels/exprgraph/pkg/ops"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-stage cache expiry when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs build and validate, then evaluate when an operation table is
// given and render when a format is set. Evaluation runs first so detailed
// diagrams can show computed values.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	opts.Logger = opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Build
	buildStart := time.Now()
	g, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.GraphHash = GraphHash(g)
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.VertexCount = g.VertexCount()
	result.Stats.ArcCount = g.ArcCount()
	result.CacheInfo.BuildHit = buildHit

	opts.Logger.Info("built graph",
		"vertices", g.VertexCount(),
		"arcs", g.ArcCount(),
		"cached", buildHit,
		"duration", result.Stats.BuildTime)

	// Stage 2: Validate
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	validateStart := time.Now()
	terminal, err := r.Validate(ctx, g)
	if err != nil {
		return nil, err
	}
	result.Terminal = terminal
	result.Stats.ValidateTime = time.Since(validateStart)

	// Stage 3: Evaluate
	if opts.Table != nil || opts.Operations != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err := r.LoadOperations(opts)
		if err != nil {
			return nil, err
		}
		opts.Table = table
		if opts.Detailed && opts.IsDiagram() {
			opts.Trace = true
		}

		evalStart := time.Now()
		res, evalHit, err := r.EvaluateWithCacheInfo(ctx, g, table, opts)
		if err != nil {
			return nil, err
		}
		result.Eval = res
		result.Stats.EvalTime = time.Since(evalStart)
		result.Stats.Depth = res.Depth
		result.Stats.Steps = len(res.Trace)
		result.CacheInfo.EvalHit = evalHit

		if opts.Values == nil && res.Trace != nil {
			opts.Values = make(map[string]float64, len(res.Trace))
			for _, s := range res.Trace {
				opts.Values[s.Vertex] = s.Value
			}
		}
	}

	// Stage 4: Render
	if opts.Format != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		renderStart := time.Now()
		out, renderHit, err := r.RenderWithCacheInfo(ctx, g, opts)
		if err != nil {
			return nil, err
		}
		result.Rendered = out
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = renderHit
	}

	if result.Stats.Depth == 0 {
		if order, err := dag.TopoSort(g); err == nil {
			result.Stats.Depth = dag.Depths(g, order)[terminal]
		}
	}
	return result, nil
}

// =============================================================================
// Build
// =============================================================================

// BuildWithCacheInfo builds the graph named by opts.Input and reports whether
// it came from the cache. Arc lists are cached by content hash; serialized
// graphs are read directly.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*dag.Graph, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Input)
	start := time.Now()

	g, hit, err := r.build(ctx, opts)

	var vertices, arcs int
	if g != nil {
		vertices, arcs = g.VertexCount(), g.ArcCount()
	}
	hooks.OnBuildComplete(ctx, opts.Input, vertices, arcs, time.Since(start), err)
	return g, hit, err
}

func (r *Runner) build(ctx context.Context, opts Options) (*dag.Graph, bool, error) {
	if opts.ResolveInputFormat() == InputJSON {
		opts.Logger.Debug("reading serialized graph", "path", opts.Input)
		g, err := ParseFile(opts)
		return g, false, err
	}

	data, err := graphio.ReadFile(opts.Input)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.GraphKey(cache.Hash(data))

	if !opts.Refresh {
		if cached, ok := r.cacheGet(ctx, "graph", key); ok {
			if g, err := Parse(cached, InputJSON); err == nil {
				return g, true, nil
			}
		}
	}

	opts.Logger.Debug("parsing arc list", "path", opts.Input, "bytes", len(data))
	g, err := Parse(data, InputArcs)
	if err != nil {
		return nil, false, err
	}
	if buf, err := MarshalGraph(g); err == nil {
		r.cacheSet(ctx, "graph", key, buf, cache.TTLGraph)
	}
	return g, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*dag.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, opts)
	return g, err
}

// =============================================================================
// Validate
// =============================================================================

// Validate checks that g is acyclic with a single terminal vertex and
// returns the terminal.
func (r *Runner) Validate(ctx context.Context, g *dag.Graph) (string, error) {
	start := time.Now()
	terminal, err := dag.Validate(g)
	observability.Pipeline().OnValidateComplete(ctx, terminal, time.Since(start), err)
	if err != nil {
		return "", err
	}
	r.Logger.Debug("validated graph", "terminal", terminal)
	return terminal, nil
}

// =============================================================================
// Render
// =============================================================================

// RenderWithCacheInfo renders g in opts.Format and reports whether the output
// came from the cache. Detailed diagrams depend on the operation table and
// values, so they are never cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *dag.Graph, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()

	out, hit, err := r.render(ctx, g, opts)

	hooks.OnRenderComplete(ctx, opts.Format, len(out), time.Since(start), err)
	if err == nil {
		opts.Logger.Info("rendered graph",
			"format", opts.Format,
			"bytes", len(out),
			"cached", hit,
			"duration", time.Since(start))
	}
	return out, hit, err
}

func (r *Runner) render(ctx context.Context, g *dag.Graph, opts Options) ([]byte, bool, error) {
	cacheable := !(opts.Detailed && opts.IsDiagram())
	var key string
	if cacheable {
		keyOpts := cache.RenderKeyOpts{Format: opts.Format}
		if opts.Format == FormatPNG {
			keyOpts.Scale = opts.Scale
		}
		key = r.Keyer.RenderKey(GraphHash(g), keyOpts)
		if !opts.Refresh {
			if cached, ok := r.cacheGet(ctx, "render", key); ok {
				return cached, true, nil
			}
		}
	}

	out, err := Render(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}
	if cacheable {
		r.cacheSet(ctx, "render", key, out, cache.TTLRender)
	}
	return out, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *dag.Graph, opts Options) ([]byte, error) {
	out, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return out, err
}

// =============================================================================
// Evaluate
// =============================================================================

// LoadOperations returns opts.Table, or reads the table at opts.Operations.
func (r *Runner) LoadOperations(opts Options) (ops.Table, error) {
	if err := opts.ValidateForEvaluate(); err != nil {
		return nil, err
	}
	if opts.Table != nil {
		return opts.Table, nil
	}
	table, err := graphio.ImportOps(opts.Operations)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded operations", "path", opts.Operations, "entries", len(table))
	return table, nil
}

// evalEntry is the cached form of an evaluation. The value is stored as
// text because JSON cannot represent inf or nan.
type evalEntry struct {
	Terminal string `json:"terminal"`
	Value    string `json:"value"`
	Depth    int    `json:"depth"`
}

// EvaluateWithCacheInfo evaluates g against table and reports whether the
// result came from the cache. Traced runs always recompute, since the cache
// holds only the final value.
func (r *Runner) EvaluateWithCacheInfo(ctx context.Context, g *dag.Graph, table ops.Table, opts Options) (*eval.Result, bool, error) {
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnEvaluateStart(ctx, g.VertexCount())
	start := time.Now()

	res, hit, err := r.evaluate(ctx, g, table, opts)

	var value float64
	var steps int
	if res != nil {
		value, steps = res.Value, len(res.Trace)
	}
	hooks.OnEvaluateComplete(ctx, value, steps, time.Since(start), err)
	if err == nil {
		opts.Logger.Info("evaluated graph",
			"terminal", res.Terminal,
			"value", eval.FormatValue(res.Value),
			"cached", hit,
			"duration", time.Since(start))
	}
	return res, hit, err
}

func (r *Runner) evaluate(ctx context.Context, g *dag.Graph, table ops.Table, opts Options) (*eval.Result, bool, error) {
	key := r.Keyer.EvalKey(GraphHash(g), TableHash(table))

	if !opts.Refresh && !opts.Trace {
		if cached, ok := r.cacheGet(ctx, "eval", key); ok {
			var entry evalEntry
			if err := json.Unmarshal(cached, &entry); err == nil {
				if v, err := strconv.ParseFloat(entry.Value, 64); err == nil {
					return &eval.Result{Terminal: entry.Terminal, Value: v, Depth: entry.Depth}, true, nil
				}
			}
		}
	}

	res, err := eval.New(g, table).Run()
	if err != nil {
		return nil, false, err
	}
	if !opts.Trace {
		res.Trace = nil
	}

	entry := evalEntry{Terminal: res.Terminal, Value: eval.FormatValue(res.Value), Depth: res.Depth}
	if data, err := json.Marshal(entry); err == nil {
		r.cacheSet(ctx, "eval", key, data, cache.TTLEval)
	}
	return res, false, nil
}

// Evaluate is a convenience wrapper that calls EvaluateWithCacheInfo and discards the cache hit info.
func (r *Runner) Evaluate(ctx context.Context, g *dag.Graph, table ops.Table, opts Options) (*eval.Result, error) {
	res, _, err := r.EvaluateWithCacheInfo(ctx, g, table, opts)
	return res, err
}

// =============================================================================
// Helpers
// =============================================================================

// MarshalGraph returns the serialized JSON form of g.
func MarshalGraph(g *dag.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := graphio.WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GraphHash returns the content hash of g's serialized form. Graphs that
// serialize identically hash identically regardless of how they were built.
func GraphHash(g *dag.Graph) string {
	data, err := MarshalGraph(g)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// TableHash returns a content hash of table that is independent of map order.
func TableHash(table ops.Table) string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(0)
		b.WriteString(table[k].Raw)
		b.WriteByte('\n')
	}
	return cache.Hash([]byte(b.String()))
}

func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
