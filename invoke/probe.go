package invoke

import (
	"context"
	"fmt"
	"reflect"
)

// The signature probe is the one place this module inspects unknown
// callables with reflection. It classifies a call shape as matched or
// mismatched before anything is executed, so "wrong call shape" can never
// run the target. It is deliberately unexported.

var (
	ctxType   = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType   = reflect.TypeOf((*error)(nil)).Elem()
	kwargType = reflect.TypeOf(map[string]any(nil))
)

// funcInfo is the probed view of a target function.
type funcInfo struct {
	fn     reflect.Value
	hasCtx bool
	// params are the declared parameters after the optional leading context.
	params []reflect.Type
}

// probeFunc inspects a func-kind value. It rejects targets whose result
// shape cannot be interpreted as (T), (T, error), (error) or (), and
// variadic targets, whose arity is open-ended and cannot be probed.
func probeFunc(fn reflect.Value) (funcInfo, error) {
	t := fn.Type()

	if t.IsVariadic() {
		return funcInfo{}, fmt.Errorf("variadic target not supported")
	}

	switch t.NumOut() {
	case 0, 1:
	case 2:
		if !t.Out(1).Implements(errType) {
			return funcInfo{}, fmt.Errorf("second result must be error, got %s", t.Out(1))
		}
	default:
		return funcInfo{}, fmt.Errorf("too many results (%d)", t.NumOut())
	}

	info := funcInfo{fn: fn}
	for i := 0; i < t.NumIn(); i++ {
		if i == 0 && t.In(0) == ctxType {
			info.hasCtx = true
			continue
		}
		info.params = append(info.params, t.In(i))
	}
	return info, nil
}

// kwargParam reports whether the target takes a single map[string]any
// data parameter, i.e. accepts arbitrary named arguments.
func (f funcInfo) kwargParam() bool {
	return len(f.params) == 1 && f.params[0] == kwargType
}

// structParam returns the struct type behind a single struct (or pointer
// to struct) data parameter.
func (f funcInfo) structParam() (reflect.Type, bool) {
	if len(f.params) != 1 {
		return nil, false
	}
	t := f.params[0]
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == kwargType {
		return nil, false
	}
	return t, true
}

// positionalArgs probes an n-ary positional shape against the canonical
// values and returns the reflect arguments when every value is assignable.
func (f funcInfo) positionalArgs(values []any, n int) ([]reflect.Value, bool) {
	if len(f.params) != n || n > len(values) {
		return nil, false
	}

	args := make([]reflect.Value, 0, n)
	for i := 0; i < n; i++ {
		v := reflect.ValueOf(values[i])
		if !v.Type().AssignableTo(f.params[i]) {
			return nil, false
		}
		args = append(args, v)
	}
	return args, true
}

// structParamNames lists the reconcilable names a struct parameter
// declares: exported field names plus json tag names.
func structParamNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		names = append(names, field.Name)
		if tag := jsonTagName(field); tag != "" && tag != field.Name {
			names = append(names, tag)
		}
	}
	return names
}

func jsonTagName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			return tag[:i]
		}
	}
	return tag
}

// buildStructArg populates a value of the struct parameter type from a
// reconciled parameter map. Fields whose declared type cannot hold the
// reconciled value are left unset, mirroring the "target simply does not
// receive it" rule. Returns false when nothing could be set.
func buildStructArg(param reflect.Type, reconciled map[string]any) (reflect.Value, bool) {
	elem := param
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}

	ptr := reflect.New(elem)
	set := 0
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		if !field.IsExported() {
			continue
		}

		value, ok := reconciled[field.Name]
		if !ok {
			if tag := jsonTagName(field); tag != "" {
				value, ok = reconciled[tag]
			}
		}
		if !ok {
			continue
		}

		v := reflect.ValueOf(value)
		if !v.Type().AssignableTo(field.Type) {
			continue
		}
		ptr.Elem().Field(i).Set(v)
		set++
	}

	if set == 0 {
		return reflect.Value{}, false
	}
	if param.Kind() == reflect.Pointer {
		return ptr, true
	}
	return ptr.Elem(), true
}

// callFunc executes the target with the probed arguments. A panic inside
// the target is a capability runtime failure, not a shape mismatch.
func callFunc(ctx context.Context, info funcInfo, args []reflect.Value) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("capability panicked: %v", r)
		}
	}()

	if info.hasCtx {
		args = append([]reflect.Value{reflect.ValueOf(ctx)}, args...)
	}

	rets := info.fn.Call(args)
	switch len(rets) {
	case 0:
		return nil, nil
	case 1:
		if info.fn.Type().Out(0).Implements(errType) {
			if e, _ := rets[0].Interface().(error); e != nil {
				return nil, e
			}
			return nil, nil
		}
		return rets[0].Interface(), nil
	default:
		if e, _ := rets[1].Interface().(error); e != nil {
			return nil, e
		}
		return rets[0].Interface(), nil
	}
}

// awaitResult awaits a channel-valued result, bounded by ctx. The await
// happens after the call, right before the outcome is inspected, so the
// fallback chain is identical for synchronous and suspending targets. A
// received error value is surfaced as the call error; a closed channel
// yields nil.
func awaitResult(ctx context.Context, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Chan || rv.Type().ChanDir()&reflect.RecvDir == 0 {
		return v, nil
	}

	chosen, recv, ok := reflect.Select([]reflect.SelectCase{
		{Dir: reflect.SelectRecv, Chan: rv},
		{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())},
	})
	if chosen == 1 {
		return nil, ctx.Err()
	}
	if !ok {
		return nil, nil
	}

	out := recv.Interface()
	if err, isErr := out.(error); isErr {
		return nil, err
	}
	return out, nil
}
