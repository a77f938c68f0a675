package invoke

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/capadapter/capability"
)

var testReq = capability.Request{
	Query:         "working status",
	Limit:         10,
	UserID:        "u-1",
	MinScore:      0.25,
	ShowBreakdown: true,
}

func TestCall_DirectInterface(t *testing.T) {
	inv := New(Options{})

	target := capability.Func(func(ctx context.Context, req capability.Request) (any, error) {
		return req.Query, nil
	})

	result, err := inv.Call(context.Background(), target, testReq)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != "working status" {
		t.Errorf("expected query echoed, got %v", result)
	}
}

func TestCall_FullKwargs(t *testing.T) {
	inv := New(Options{})

	var got map[string]any
	target := func(ctx context.Context, params map[string]any) (any, error) {
		got = params
		return "ok", nil
	}

	result, err := inv.Call(context.Background(), target, testReq)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected ok, got %v", result)
	}

	if len(got) != 5 {
		t.Fatalf("expected all 5 canonical fields, got %v", got)
	}
	if got[capability.FieldQuery] != "working status" {
		t.Errorf("query = %v", got[capability.FieldQuery])
	}
	if got[capability.FieldLimit] != 10 {
		t.Errorf("limit = %v", got[capability.FieldLimit])
	}
	if got[capability.FieldUserID] != "u-1" {
		t.Errorf("user_id = %v", got[capability.FieldUserID])
	}
	if got[capability.FieldMinScore] != 0.25 {
		t.Errorf("min_score = %v", got[capability.FieldMinScore])
	}
	if got[capability.FieldShowBreakdown] != true {
		t.Errorf("show_breakdown = %v", got[capability.FieldShowBreakdown])
	}
}

func TestCall_FilteredKwargsStruct(t *testing.T) {
	inv := New(Options{})

	type params struct {
		Q         string
		Limit     int
		User      string `json:"user"`
		Threshold float64
		internal  string
	}

	var got params
	target := func(ctx context.Context, p params) (any, error) {
		got = p
		return "ok", nil
	}

	if _, err := inv.Call(context.Background(), target, testReq); err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	if got.Q != "working status" {
		t.Errorf("query should reconcile to Q, got %q", got.Q)
	}
	if got.Limit != 10 {
		t.Errorf("limit should match verbatim, got %d", got.Limit)
	}
	if got.User != "u-1" {
		t.Errorf("user_id should reconcile to User via alias, got %q", got.User)
	}
	if got.Threshold != 0.25 {
		t.Errorf("min_score should reconcile to Threshold, got %v", got.Threshold)
	}
	if got.internal != "" {
		t.Errorf("unexported field must stay unset, got %q", got.internal)
	}
}

func TestCall_FilteredKwargsPointerStruct(t *testing.T) {
	inv := New(Options{})

	type params struct {
		Query string
	}

	var got *params
	target := func(p *params) (any, error) {
		got = p
		return nil, nil
	}

	if _, err := inv.Call(context.Background(), target, testReq); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if got == nil || got.Query != "working status" {
		t.Errorf("expected populated pointer struct, got %+v", got)
	}
}

func TestCall_Positional4AfterKwargsMismatch(t *testing.T) {
	inv := New(Options{})

	var gotQuery, gotUser string
	var gotLimit int
	var gotMin float64
	target := func(ctx context.Context, query string, limit int, userID string, minScore float64) (any, error) {
		gotQuery, gotLimit, gotUser, gotMin = query, limit, userID, minScore
		return "ranked", nil
	}

	result, err := inv.Call(context.Background(), target, testReq)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != "ranked" {
		t.Errorf("expected ranked, got %v", result)
	}
	if gotQuery != "working status" || gotLimit != 10 || gotUser != "u-1" || gotMin != 0.25 {
		t.Errorf("wrong positional values: %q %d %q %v", gotQuery, gotLimit, gotUser, gotMin)
	}
}

func TestCall_FallbackMonotonicityToPositional2(t *testing.T) {
	inv := New(Options{})

	calls := 0
	target := func(query string, limit int) (any, error) {
		calls++
		return []string{query}, nil
	}

	result, err := inv.Call(context.Background(), target, testReq)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("mismatched shapes must not execute the target, got %d calls", calls)
	}
	got, ok := result.([]string)
	if !ok || len(got) != 1 || got[0] != "working status" {
		t.Errorf("unexpected result %v", result)
	}
}

func TestCall_Positional1(t *testing.T) {
	inv := New(Options{})

	target := func(query string) string { return "got:" + query }

	result, err := inv.Call(context.Background(), target, testReq)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != "got:working status" {
		t.Errorf("unexpected result %v", result)
	}
}

func TestCall_TerminalMismatch(t *testing.T) {
	inv := New(Options{})

	// No shape in the chain can feed a chan int.
	target := func(ch chan int) {}

	_, err := inv.Call(context.Background(), target, testReq)
	if !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %T", err)
	}
	if len(mismatch.Attempts) != 6 {
		t.Errorf("expected 6 recorded attempts, got %d", len(mismatch.Attempts))
	}
	if mismatch.Attempts[0].Shape != ShapeFullKwargs {
		t.Errorf("first attempt should be full-kwargs, got %s", mismatch.Attempts[0].Shape)
	}
	if mismatch.Attempts[5].Shape != ShapePositional1 {
		t.Errorf("terminal attempt should be positional-1, got %s", mismatch.Attempts[5].Shape)
	}
}

func TestCall_RuntimeErrorNotSwallowed(t *testing.T) {
	inv := New(Options{})

	errBoom := errors.New("index corrupted")
	calls := 0
	// The positional-4 shape matches; its failure must end the chain even
	// though positional-2 would also have matched a narrower target.
	target := func(ctx context.Context, query string, limit int, userID string, minScore float64) (any, error) {
		calls++
		return nil, errBoom
	}

	_, err := inv.Call(context.Background(), target, testReq)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected capability error surfaced unchanged, got %v", err)
	}
	if errors.Is(err, ErrSignatureMismatch) {
		t.Error("runtime failure must not be classified as signature mismatch")
	}
	if calls != 1 {
		t.Errorf("chain must stop after a runtime failure, got %d calls", calls)
	}
}

func TestCall_PanicIsRuntimeFailure(t *testing.T) {
	inv := New(Options{})

	target := func(query string, limit int) (any, error) {
		panic("boom")
	}

	_, err := inv.Call(context.Background(), target, testReq)
	if err == nil || errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected runtime failure, got %v", err)
	}
}

func TestCall_AwaitsChannelResult(t *testing.T) {
	inv := New(Options{})

	target := func(query string, limit int) (any, error) {
		ch := make(chan any, 1)
		go func() {
			ch <- "deferred:" + query
		}()
		return ch, nil
	}

	result, err := inv.Call(context.Background(), target, testReq)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != "deferred:working status" {
		t.Errorf("unexpected awaited result %v", result)
	}
}

func TestCall_AwaitedErrorSurfaces(t *testing.T) {
	inv := New(Options{})

	errLate := errors.New("late failure")
	target := func(query string) any {
		ch := make(chan any, 1)
		ch <- errLate
		return ch
	}

	_, err := inv.Call(context.Background(), target, testReq)
	if !errors.Is(err, errLate) {
		t.Fatalf("expected awaited error surfaced, got %v", err)
	}
}

func TestCall_AwaitBoundedByContext(t *testing.T) {
	inv := New(Options{})

	target := func(query string) any {
		return make(chan any) // never delivers
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := inv.Call(ctx, target, testReq)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline, got %v", err)
	}
}

func TestCall_UnsupportedTargets(t *testing.T) {
	inv := New(Options{})
	ctx := context.Background()

	if _, err := inv.Call(ctx, nil, testReq); !errors.Is(err, ErrUnsupportedTarget) {
		t.Errorf("nil target: expected ErrUnsupportedTarget, got %v", err)
	}
	if _, err := inv.Call(ctx, 42, testReq); !errors.Is(err, ErrUnsupportedTarget) {
		t.Errorf("non-func target: expected ErrUnsupportedTarget, got %v", err)
	}
	variadic := func(args ...string) {}
	if _, err := inv.Call(ctx, variadic, testReq); !errors.Is(err, ErrUnsupportedTarget) {
		t.Errorf("variadic target: expected ErrUnsupportedTarget, got %v", err)
	}
	threeResults := func(q string) (int, int, error) { return 0, 0, nil }
	if _, err := inv.Call(ctx, threeResults, testReq); !errors.Is(err, ErrUnsupportedTarget) {
		t.Errorf("three results: expected ErrUnsupportedTarget, got %v", err)
	}
}

func TestInvocable(t *testing.T) {
	if !Invocable(func() {}) {
		t.Error("plain func should be invocable")
	}
	if !Invocable(capability.Func(func(context.Context, capability.Request) (any, error) { return nil, nil })) {
		t.Error("capability.Func should be invocable")
	}
	if Invocable(nil) {
		t.Error("nil should not be invocable")
	}
	if Invocable("data") {
		t.Error("non-func value should not be invocable")
	}
}
