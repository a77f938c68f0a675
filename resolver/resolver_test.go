package resolver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonwraymond/capadapter/registry"
)

func searchFunc(ctx context.Context, query string, limit int) (any, error) {
	return nil, nil
}

func staticLocation(reg *registry.Registry, location, symbol string) {
	_ = reg.Register(location, registry.StaticProvider(registry.SymbolTable{
		symbol: searchFunc,
	}))
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		in   string
		want CandidateSpec
		ok   bool
	}{
		{"memsearch:HybridSearch", CandidateSpec{"memsearch", "HybridSearch"}, true},
		{"  a : b ", CandidateSpec{"a", "b"}, true},
		{"noseparator", CandidateSpec{}, false},
		{":sym", CandidateSpec{}, false},
		{"loc:", CandidateSpec{}, false},
		{"", CandidateSpec{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseSpec(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseSpec(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolve_FirstSurvivor(t *testing.T) {
	reg := registry.New()
	staticLocation(reg, "b", "impl")

	res := New(Options{
		Registry: reg,
		Candidates: []CandidateSpec{
			{Location: "a", Symbol: "not_found"},
			{Location: "b", Symbol: "impl"},
		},
	})

	resolved, err := res.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Origin != (CandidateSpec{Location: "b", Symbol: "impl"}) {
		t.Errorf("expected origin b:impl, got %v", resolved.Origin)
	}
	if resolved.Target == nil {
		t.Error("expected non-nil target")
	}
	if resolved.ResolvedAt.IsZero() {
		t.Error("expected ResolvedAt to be set")
	}
}

func TestResolve_OverridePrecedence(t *testing.T) {
	reg := registry.New()
	staticLocation(reg, "static", "HybridSearch")
	staticLocation(reg, "c", "search")

	res := New(Options{
		Registry:   reg,
		Candidates: []CandidateSpec{{Location: "static", Symbol: "HybridSearch"}},
		Override:   "c:search",
	})

	resolved, err := res.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Origin != (CandidateSpec{Location: "c", Symbol: "search"}) {
		t.Errorf("expected override origin c:search, got %v", resolved.Origin)
	}
}

func TestResolve_MalformedOverrideIgnored(t *testing.T) {
	reg := registry.New()
	staticLocation(reg, "static", "HybridSearch")

	res := New(Options{
		Registry:   reg,
		Candidates: []CandidateSpec{{Location: "static", Symbol: "HybridSearch"}},
		Override:   "missing-separator",
	})

	resolved, err := res.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Origin.Location != "static" {
		t.Errorf("expected static origin, got %v", resolved.Origin)
	}
}

func TestResolve_SelfExclusion(t *testing.T) {
	reg := registry.New()
	staticLocation(reg, SelfLocation, SelfSymbol)
	staticLocation(reg, "real", "HybridSearch")

	res := New(Options{
		Registry: reg,
		Candidates: []CandidateSpec{
			{Location: SelfLocation, Symbol: SelfSymbol},
			{Location: "real", Symbol: "HybridSearch"},
		},
	})

	resolved, err := res.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Origin.Location != "real" {
		t.Errorf("resolver selected its own helper: %v", resolved.Origin)
	}
}

func TestResolve_SelfOnlyIsAbsent(t *testing.T) {
	reg := registry.New()
	staticLocation(reg, SelfLocation, SelfSymbol)

	res := New(Options{
		Registry:   reg,
		Candidates: []CandidateSpec{{Location: SelfLocation, Symbol: SelfSymbol}},
	})

	_, err := res.Resolve(context.Background())
	if !errors.Is(err, ErrNoCapability) {
		t.Errorf("expected ErrNoCapability, got %v", err)
	}
}

func TestResolve_SkipsBadCandidates(t *testing.T) {
	reg := registry.New()

	// Load failure.
	_ = reg.Register("broken", registry.ProviderFunc(
		func(context.Context) (registry.SymbolTable, error) {
			return nil, errors.New("backend down")
		},
	))
	// Symbol present but not invocable.
	_ = reg.Register("data", registry.StaticProvider(registry.SymbolTable{
		"HybridSearch": 42,
	}))
	staticLocation(reg, "good", "HybridSearch")

	res := New(Options{
		Registry: reg,
		Candidates: []CandidateSpec{
			{Location: "broken", Symbol: "HybridSearch"},
			{Location: "unregistered", Symbol: "HybridSearch"},
			{Location: "data", Symbol: "HybridSearch"},
			{Location: "good", Symbol: "missing_symbol"},
			{Location: "good", Symbol: "HybridSearch"},
		},
	})

	resolved, err := res.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := CandidateSpec{Location: "good", Symbol: "HybridSearch"}
	if resolved.Origin != want {
		t.Errorf("expected origin %v, got %v", want, resolved.Origin)
	}
}

func TestResolve_CachesFirstSuccess(t *testing.T) {
	reg := registry.New()

	loads := 0
	_ = reg.Register("counted", registry.ProviderFunc(
		func(context.Context) (registry.SymbolTable, error) {
			loads++
			return registry.SymbolTable{"HybridSearch": searchFunc}, nil
		},
	))

	res := New(Options{
		Registry:   reg,
		Candidates: []CandidateSpec{{Location: "counted", Symbol: "HybridSearch"}},
	})

	ctx := context.Background()
	first, err := res.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, err := res.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if first != second {
		t.Error("expected identical cached resolution")
	}
	if loads != 1 {
		t.Errorf("expected exactly one scan, got %d loads", loads)
	}
}

func TestResolve_RescansOnAbsence(t *testing.T) {
	reg := registry.New()

	loads := 0
	configured := false
	_ = reg.Register("lazy", registry.ProviderFunc(
		func(context.Context) (registry.SymbolTable, error) {
			loads++
			if !configured {
				return nil, errors.New("not configured yet")
			}
			return registry.SymbolTable{"HybridSearch": searchFunc}, nil
		},
	))

	res := New(Options{
		Registry:   reg,
		Candidates: []CandidateSpec{{Location: "lazy", Symbol: "HybridSearch"}},
	})

	ctx := context.Background()
	if _, err := res.Resolve(ctx); !errors.Is(err, ErrNoCapability) {
		t.Fatalf("expected ErrNoCapability, got %v", err)
	}
	if _, err := res.Resolve(ctx); !errors.Is(err, ErrNoCapability) {
		t.Fatalf("expected ErrNoCapability, got %v", err)
	}
	if loads != 2 {
		t.Errorf("expected a scan per call while absent, got %d loads", loads)
	}

	// The location warms up; the next call finds it.
	configured = true
	resolved, err := res.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve after warmup failed: %v", err)
	}
	if resolved.Origin.Location != "lazy" {
		t.Errorf("expected lazy origin, got %v", resolved.Origin)
	}
}

func TestReset(t *testing.T) {
	reg := registry.New()
	staticLocation(reg, "a", "HybridSearch")

	res := New(Options{
		Registry:   reg,
		Candidates: []CandidateSpec{{Location: "a", Symbol: "HybridSearch"}},
	})

	ctx := context.Background()
	first, err := res.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	res.Reset()
	if res.Resolved() != nil {
		t.Error("expected empty cache after Reset")
	}

	second, err := res.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve after Reset failed: %v", err)
	}
	if first == second {
		t.Error("expected a fresh resolution after Reset")
	}
}

func TestResolve_ConcurrentCallersConverge(t *testing.T) {
	reg := registry.New()
	staticLocation(reg, "a", "HybridSearch")

	res := New(Options{
		Registry:   reg,
		Candidates: []CandidateSpec{{Location: "a", Symbol: "HybridSearch"}},
	})

	const n = 16
	results := make([]*Resolved, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			resolved, err := res.Resolve(context.Background())
			if err != nil {
				t.Errorf("Resolve failed: %v", err)
				return
			}
			results[i] = resolved
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent callers got different resolutions")
		}
	}
}
