package batch

import (
	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/num"
)

// Canonical returns the report as RFC 8785 canonical JSON. Equal reports
// encode to identical bytes.
func (r *Report) Canonical() ([]byte, error) {
	outcomes := make([]any, len(r.Outcomes))
	for i, o := range r.Outcomes {
		outcomes[i] = o.toMap()
	}
	return num.MarshalCanonical(map[string]any{
		"run_id":   r.RunID,
		"failed":   r.Failed(),
		"outcomes": outcomes,
	})
}

func (o Outcome) toMap() map[string]any {
	args := make([]any, len(o.Call.Args))
	copy(args, o.Call.Args)

	m := map[string]any{
		"index": o.Index,
		"op":    o.Call.Op,
		"args":  args,
	}
	if o.Err != nil {
		errMap := map[string]any{"message": o.Err.Error()}
		if kind, ok := arith.KindOf(o.Err); ok {
			errMap["kind"] = string(kind)
		}
		m["error"] = errMap
		return m
	}
	m["result"] = o.Result
	return m
}
