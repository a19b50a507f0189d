package cache

// Keyer generates cache keys for pipeline stage results.
type Keyer interface {
	// GraphKey keys a serialized graph built from an arc list.
	GraphKey(sourceHash string) string

	// RenderKey keys a rendering of a graph.
	RenderKey(graphHash string, opts RenderKeyOpts) string

	// EvalKey keys the evaluation of a graph against an operation table.
	EvalKey(graphHash, opsHash string) string
}

// RenderKeyOpts holds the render options that change the output.
type RenderKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// keyVersion is bumped whenever a cached value's encoding changes.
const keyVersion = "v1"

// DefaultKeyer hashes stage inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(sourceHash string) string {
	return hashKey("graph", keyVersion, sourceHash)
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", keyVersion, graphHash, opts)
}

// EvalKey implements Keyer.
func (DefaultKeyer) EvalKey(graphHash, opsHash string) string {
	return hashKey("eval", keyVersion, graphHash, opsHash)
}
