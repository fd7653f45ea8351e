package analysis

// Report describes the shape of one tree.
// Computed once by Analyze, used by all renderers.
type Report struct {
	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// ByKind groups elements by kind.
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// Hash is the structural hash of the root.
	Hash uint64 `json:"hash"`

	// Version is the report format version.
	Version string `json:"version"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	// Nodes and Tokens count positions in the tree. A shared subtree is
	// counted once per place it appears.
	Nodes  int `json:"nodes"`
	Tokens int `json:"tokens"`

	// Records counts distinct allocations reachable from the root.
	Records int `json:"records"`

	// Distinct counts structurally distinct subtrees, tokens included.
	Distinct int `json:"distinct"`

	// MaxDepth is the longest root-to-leaf path, the root being depth 1.
	MaxDepth int `json:"maxDepth"`

	// TextLen is the root's stored text length.
	TextLen uint32 `json:"textLen"`

	// TextBytes is the number of bytes in all tokens under the root.
	TextBytes int `json:"textBytes"`
}

// Elements returns the number of element positions in the tree.
func (t Totals) Elements() int {
	return t.Nodes + t.Tokens
}

// Shared returns the number of positions served by an allocation that
// also appears elsewhere in the tree.
func (t Totals) Shared() int {
	return t.Elements() - t.Records
}

// KindAnalysis contains aggregated data for a single kind.
type KindAnalysis struct {
	Kind   uint16 `json:"kind"`
	Name   string `json:"name"`
	Nodes  int    `json:"nodes"`
	Tokens int    `json:"tokens"`
	Bytes  int    `json:"bytes"`
}

// Count returns the number of elements of this kind.
func (k KindAnalysis) Count() int {
	return k.Nodes + k.Tokens
}
