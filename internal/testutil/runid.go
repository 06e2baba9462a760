// Package testutil holds helpers shared by the package tests.
package testutil

// FixedRunIDGenerator returns the same run ID every time.
//
// Batch reports and harness traces carry a run ID; pinning it makes their
// canonical encoding byte-identical across runs so golden files stay stable.
//
// Thread-safety: FixedRunIDGenerator is stateless and safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// DefaultRunID is used when NewFixedRunIDGenerator is given an empty ID.
const DefaultRunID = "test-run-00000000-0000-0000-0000-000000000001"

// NewFixedRunIDGenerator creates a generator that always returns id.
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run ID.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}
