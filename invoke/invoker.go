package invoke

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jonwraymond/capadapter/capability"
)

// Sentinel errors for consistent error handling by callers.
var (
	// ErrUnsupportedTarget means the resolved value is not something the
	// invoker knows how to call at all.
	ErrUnsupportedTarget = errors.New("unsupported capability target")

	// ErrSignatureMismatch means every calling convention in the fallback
	// chain was exhausted without finding a shape the target accepts.
	ErrSignatureMismatch = errors.New("no calling convention matched target signature")
)

// Shape names one calling convention in the fallback chain.
type Shape string

// Fallback chain states, in strict attempt order.
const (
	ShapeDirect         Shape = "direct"
	ShapeFullKwargs     Shape = "full-kwargs"
	ShapeFilteredKwargs Shape = "filtered-kwargs"
	ShapePositional4    Shape = "positional-4"
	ShapePositional3    Shape = "positional-3"
	ShapePositional2    Shape = "positional-2"
	ShapePositional1    Shape = "positional-1"
)

// Attempt records one fallback-chain step for diagnostics. Attempts are
// ephemeral; they only travel inside a MismatchError.
type Attempt struct {
	Shape  Shape
	Reason string
}

// MismatchError carries the attempt log when the whole chain is exhausted.
type MismatchError struct {
	Attempts []Attempt
}

// Error implements error.
func (e *MismatchError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s (%s)", a.Shape, a.Reason)
	}
	return fmt.Sprintf("%v: tried %s", ErrSignatureMismatch, strings.Join(parts, ", "))
}

// Unwrap lets callers match with errors.Is(err, ErrSignatureMismatch).
func (e *MismatchError) Unwrap() error {
	return ErrSignatureMismatch
}

// Options configures an Invoker.
type Options struct {
	// Aliases overrides the parameter alias table. Nil uses DefaultAliases.
	Aliases AliasTable
}

// Invoker executes a resolved capability against the canonical request,
// walking a prioritized chain of calling conventions until one matches.
// It is stateless between calls and safe for concurrent use.
type Invoker struct {
	aliases AliasTable
}

// New creates an Invoker.
func New(opts Options) *Invoker {
	aliases := opts.Aliases
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Invoker{aliases: aliases}
}

// Invocable reports whether a resolved symbol is something Call can
// execute. The resolver uses this to skip non-invocable candidates.
func Invocable(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(capability.Interface); ok {
		return true
	}
	return reflect.ValueOf(v).Kind() == reflect.Func
}

// Call invokes the target with the canonical request.
//
// Targets implementing capability.Interface are called directly. Plain
// functions go through the fallback chain: full-kwargs, filtered-kwargs,
// then positional arities 4 down to 1. Each state is first probed; a probe
// mismatch advances the chain without executing the target, so a target
// that actually runs and fails always surfaces its own error unchanged.
// When even the terminal positional-1 shape cannot match, Call returns a
// MismatchError wrapping ErrSignatureMismatch.
//
// The raw result is returned unnormalized. A channel-valued result is
// awaited (bounded by ctx) before being returned.
func (inv *Invoker) Call(ctx context.Context, target any, req capability.Request) (any, error) {
	if target == nil {
		return nil, ErrUnsupportedTarget
	}

	if impl, ok := target.(capability.Interface); ok {
		result, err := impl.HybridSearch(ctx, req)
		if err != nil {
			return nil, err
		}
		return awaitResult(ctx, result)
	}

	fn := reflect.ValueOf(target)
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}

	info, err := probeFunc(fn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTarget, err)
	}

	var attempts []Attempt
	for _, state := range inv.chain(info, req) {
		args, ok := state.probe()
		if !ok {
			attempts = append(attempts, Attempt{Shape: state.shape, Reason: state.reason})
			continue
		}

		result, err := callFunc(ctx, info, args)
		if err != nil {
			// The target accepted the shape and ran; its failure is a
			// capability runtime failure and ends the chain.
			return nil, err
		}
		return awaitResult(ctx, result)
	}

	return nil, &MismatchError{Attempts: attempts}
}

// chainState is one probe-then-maybe-call step.
type chainState struct {
	shape  Shape
	reason string
	probe  func() ([]reflect.Value, bool)
}

// chain builds the fallback states for one call. Probes close over the
// request so no arguments are constructed for shapes never reached.
func (inv *Invoker) chain(info funcInfo, req capability.Request) []chainState {
	fields := req.Fields()
	positional := req.Positional()

	states := []chainState{
		{
			shape:  ShapeFullKwargs,
			reason: "target does not accept arbitrary named arguments",
			probe: func() ([]reflect.Value, bool) {
				if !info.kwargParam() {
					return nil, false
				}
				return []reflect.Value{reflect.ValueOf(fields)}, true
			},
		},
		{
			shape:  ShapeFilteredKwargs,
			reason: "no canonical field reconciled against target parameters",
			probe: func() ([]reflect.Value, bool) {
				param, ok := info.structParam()
				if !ok {
					return nil, false
				}
				reconciled := inv.aliases.Reconcile(fields, Signature{
					Params: structParamNames(param),
				})
				if len(reconciled) == 0 {
					return nil, false
				}
				arg, ok := buildStructArg(info.params[0], reconciled)
				if !ok {
					return nil, false
				}
				return []reflect.Value{arg}, true
			},
		},
	}

	for n := len(positional); n >= 1; n-- {
		arity := n
		states = append(states, chainState{
			shape:  Shape(fmt.Sprintf("positional-%d", arity)),
			reason: fmt.Sprintf("target does not take %d positional arguments", arity),
			probe: func() ([]reflect.Value, bool) {
				return info.positionalArgs(positional, arity)
			},
		})
	}

	return states
}
