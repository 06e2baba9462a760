package batch

import (
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/num"
)

// Call is one operation invocation read from a batch file.
type Call struct {
	Op   string
	Args []any
	Pos  token.Pos
}

// Batch is a loaded batch file.
type Batch struct {
	Path  string
	Calls []Call
}

// LoadError reports a batch file that could not be loaded.
type LoadError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// schemaSource constrains the shape of a batch. Definitions are closed, so a
// struct operand matches exactly one of #Decimal and #Complex.
const schemaSource = `
#Decimal: {decimal: string}
#Complex: {complex: [number, number]}
#Operand: number | null | string | bool | #Decimal | #Complex
#Call: {
	op!:   %s
	args!: [...#Operand]
}
#Batch: {
	calls: [...#Call]
}
`

func schema(ctx *cue.Context) cue.Value {
	ops := arith.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = fmt.Sprintf("%q", op.Name)
	}
	src := fmt.Sprintf(schemaSource, strings.Join(names, " | "))
	return ctx.CompileString(src, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Batch"))
}

// Load reads a batch from a .cue file, or from the CUE package in a
// directory.
func Load(path string) (*Batch, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("batch not found: %v", err)}
	}

	ctx := cuecontext.New()
	var value cue.Value
	if info.IsDir() {
		instances := load.Instances([]string{"."}, &load.Config{Dir: path})
		if len(instances) == 0 {
			return nil, &LoadError{Path: path, Message: "no CUE instances loaded"}
		}
		if inst := instances[0]; inst.Err != nil {
			return nil, &LoadError{Path: path, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
		}
		value = ctx.BuildInstance(instances[0])
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Path: path, Message: fmt.Sprintf("reading batch: %v", err)}
		}
		value = ctx.CompileBytes(data, cue.Filename(path))
	}
	if err := value.Err(); err != nil {
		return nil, cueLoadError(path, "building CUE value", err)
	}

	return decode(path, schema(ctx).Unify(value))
}

// LoadString reads a batch from CUE source. name is used in positions.
func LoadString(name, src string) (*Batch, error) {
	ctx := cuecontext.New()
	value := ctx.CompileString(src, cue.Filename(name))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(name, "building CUE value", err)
	}
	return decode(name, schema(ctx).Unify(value))
}

func decode(path string, v cue.Value) (*Batch, error) {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(path, "invalid batch", err)
	}

	iter, err := v.LookupPath(cue.ParsePath("calls")).List()
	if err != nil {
		return nil, cueLoadError(path, "reading calls", err)
	}

	b := &Batch{Path: path}
	for iter.Next() {
		call, err := decodeCall(path, iter.Value())
		if err != nil {
			return nil, err
		}
		b.Calls = append(b.Calls, call)
	}
	return b, nil
}

func decodeCall(path string, v cue.Value) (Call, error) {
	op, err := v.LookupPath(cue.ParsePath("op")).String()
	if err != nil {
		return Call{}, cueLoadError(path, "reading op", err)
	}

	call := Call{Op: op, Pos: v.Pos(), Args: []any{}}
	iter, err := v.LookupPath(cue.ParsePath("args")).List()
	if err != nil {
		return Call{}, cueLoadError(path, "reading args", err)
	}
	for iter.Next() {
		arg, err := decodeOperand(path, iter.Value())
		if err != nil {
			return Call{}, err
		}
		call.Args = append(call.Args, arg)
	}
	return call, nil
}

func decodeOperand(path string, v cue.Value) (any, error) {
	switch v.Kind() {
	case cue.NullKind:
		return nil, nil
	case cue.IntKind:
		i, err := v.Int64()
		if err != nil {
			return nil, &LoadError{Path: path, Pos: v.Pos(), Message: fmt.Sprintf("int operand: %v", err)}
		}
		return num.Int(i), nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return nil, &LoadError{Path: path, Pos: v.Pos(), Message: fmt.Sprintf("float operand: %v", err)}
		}
		return num.Float(f), nil
	case cue.StringKind:
		return v.String()
	case cue.BoolKind:
		return v.Bool()
	case cue.StructKind:
		if d := v.LookupPath(cue.ParsePath("decimal")); d.Exists() {
			return decodeDecimal(path, d)
		}
		return decodeComplex(path, v.LookupPath(cue.ParsePath("complex")))
	default:
		return nil, &LoadError{Path: path, Pos: v.Pos(), Message: fmt.Sprintf("unsupported operand kind: %v", v.Kind())}
	}
}

func decodeDecimal(path string, v cue.Value) (any, error) {
	s, err := v.String()
	if err != nil {
		return nil, cueLoadError(path, "decimal operand", err)
	}
	d, err := num.ParseDecimal(s)
	if err != nil {
		return nil, &LoadError{Path: path, Pos: v.Pos(), Message: fmt.Sprintf("decimal operand %q: %v", s, err)}
	}
	return d, nil
}

func decodeComplex(path string, v cue.Value) (any, error) {
	iter, err := v.List()
	if err != nil {
		return nil, cueLoadError(path, "complex operand", err)
	}
	var parts []float64
	for iter.Next() {
		f, err := iter.Value().Float64()
		if err != nil {
			return nil, cueLoadError(path, "complex operand", err)
		}
		parts = append(parts, f)
	}
	return num.Complex(complex(parts[0], parts[1])), nil
}

// cueLoadError converts a CUE error into a LoadError carrying the first
// reported position.
func cueLoadError(path, context string, err error) *LoadError {
	le := &LoadError{Path: path, Message: fmt.Sprintf("%s: %v", context, err)}
	if positions := cueerrors.Positions(err); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
