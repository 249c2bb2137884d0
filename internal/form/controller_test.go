package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	sdkmath "cosmossdk.io/math"

	"github.com/Klingon-tech/klingsend/internal/balance"
	"github.com/Klingon-tech/klingsend/internal/registry"
	"github.com/Klingon-tech/klingsend/pkg/entry"
)

// fakeSink records every committed amount in order.
type fakeSink struct {
	values []string
}

func (s *fakeSink) SetAmount(text string) {
	s.values = append(s.values, text)
}

func (s *fakeSink) last() string {
	if len(s.values) == 0 {
		return "<none>"
	}
	return s.values[len(s.values)-1]
}

func newTestController(t *testing.T) (*Controller, *balance.MemoryProvider, *fakeSink) {
	t.Helper()
	mem := balance.NewMemory()
	sink := &fakeSink{}
	c := New(registry.Default(), mem, sink)
	c.SetAddress("kling1abc")
	return c, mem, sink
}

func TestSelectAndRefreshFlow(t *testing.T) {
	c, mem, sink := newTestController(t)
	mem.Set("klingnet", "kling1abc", "kgx", sdkmath.NewInt(25_000_000_000_000))

	if got := c.BalanceLabel(); got != "0" {
		t.Errorf("label before selection = %q, want %q", got, "0")
	}

	if err := c.SelectAsset("klingnet", "KGX"); err != nil {
		t.Fatalf("SelectAsset: %v", err)
	}
	if got := c.BalanceLabel(); got != entry.PendingLabel {
		t.Errorf("label while pending = %q, want %q", got, entry.PendingLabel)
	}
	if got := sink.last(); got != "" {
		t.Errorf("selection must clear the field through the sink, got %q", got)
	}

	if err := c.RefreshBalance(context.Background()); err != nil {
		t.Fatalf("RefreshBalance: %v", err)
	}
	if got := c.BalanceLabel(); got != "25" {
		t.Errorf("label after refresh = %q, want %q", got, "25")
	}
	if got := c.BalanceState(); got != entry.BalanceReady {
		t.Errorf("state after refresh = %v, want ready", got)
	}
}

func TestSelectUnknownAsset(t *testing.T) {
	c, _, _ := newTestController(t)

	err := c.SelectAsset("klingnet", "DOGE")
	if !errors.Is(err, ErrUnknownAsset) {
		t.Fatalf("SelectAsset error = %v, want %v", err, ErrUnknownAsset)
	}
	if got := c.BalanceState(); got != entry.BalanceNone {
		t.Errorf("failed selection must not change state, got %v", got)
	}
}

func TestProposeEditFlow(t *testing.T) {
	c, _, sink := newTestController(t)
	if err := c.SelectAsset("klingnet", "KUSD"); err != nil {
		t.Fatal(err)
	}

	type step struct {
		current  string
		inserted string
		kind     entry.EditKind
		accept   bool
		text     string
	}
	steps := []step{
		{"", "1", entry.EditInsert, true, "1"},
		{"1", ".", entry.EditInsert, true, "1."},
		{"1.", "2345678", entry.EditInsert, false, "1."},
		{"1.", "2", entry.EditInsert, true, "1.2"},
		{"1.2", ",", entry.EditInsert, false, "1.2"},
		{"1.2", "", entry.EditDelete, true, "1.2"},
		{"1.", "", entry.EditDelete, true, "1."},
	}
	for i, st := range steps {
		got := c.ProposeEdit(entry.EditProposal{Current: st.current, Inserted: st.inserted, Kind: st.kind})
		if got != st.accept {
			t.Fatalf("step %d: ProposeEdit = %v, want %v", i, got, st.accept)
		}
		if text := c.Text(); text != st.text {
			t.Fatalf("step %d: Text = %q, want %q", i, text, st.text)
		}
	}

	// Only accepted edits reach the sink: the "" from selection plus one
	// entry per accepted step.
	wantSink := []string{"", "1", "1.", "1.2", "1.2", "1."}
	if len(sink.values) != len(wantSink) {
		t.Fatalf("sink got %v, want %v", sink.values, wantSink)
	}
	for i := range wantSink {
		if sink.values[i] != wantSink[i] {
			t.Fatalf("sink[%d] = %q, want %q", i, sink.values[i], wantSink[i])
		}
	}
}

func TestProposeEditWithoutSelection(t *testing.T) {
	c, _, _ := newTestController(t)

	// No asset means zero decimals: whole numbers only.
	if !c.ProposeEdit(entry.EditProposal{Current: "", Inserted: "5", Kind: entry.EditInsert}) {
		t.Error("digit must be accepted without a selection")
	}
	if !c.ProposeEdit(entry.EditProposal{Current: "5", Inserted: ".", Kind: entry.EditInsert}) {
		t.Error("bare separator is within shape at zero decimals")
	}
	if c.ProposeEdit(entry.EditProposal{Current: "5.", Inserted: "1", Kind: entry.EditInsert}) {
		t.Error("fractional digit must be rejected at zero decimals")
	}
}

func TestUseMax(t *testing.T) {
	c, mem, sink := newTestController(t)
	mem.Set("klingnet", "kling1abc", "kgx", sdkmath.NewInt(25_000_000_000_000))

	// Nothing selected: no-op.
	if c.UseMax() {
		t.Fatal("UseMax without selection must do nothing")
	}

	if err := c.SelectAsset("klingnet", "KGX"); err != nil {
		t.Fatal(err)
	}

	// Balance still pending: no-op.
	if c.UseMax() {
		t.Fatal("UseMax while pending must do nothing")
	}
	if got := c.Text(); got != "" {
		t.Fatalf("field changed by ignored max: %q", got)
	}

	if err := c.RefreshBalance(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !c.UseMax() {
		t.Fatal("UseMax with resolved balance must fill the field")
	}
	// 25 KGX minus the 0.25 KGX reserve.
	if got := c.Text(); got != "24.75" {
		t.Errorf("Text after max = %q, want %q", got, "24.75")
	}
	if got := sink.last(); got != "24.75" {
		t.Errorf("sink after max = %q, want %q", got, "24.75")
	}
}

func TestUseMaxNonNative(t *testing.T) {
	c, mem, _ := newTestController(t)
	mem.Set("klingnet", "kling1abc", "kusd", sdkmath.NewInt(1_500_000))

	if err := c.SelectAsset("klingnet", "KUSD"); err != nil {
		t.Fatal(err)
	}
	if err := c.RefreshBalance(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !c.UseMax() {
		t.Fatal("UseMax must fill the field")
	}
	if got := c.Text(); got != "1.5" {
		t.Errorf("Text after max = %q, want %q", got, "1.5")
	}
}

func TestRefreshFailureStaysPending(t *testing.T) {
	c, mem, _ := newTestController(t)
	boom := errors.New("boom")
	mem.SetError(boom)

	if err := c.SelectAsset("klingnet", "KGX"); err != nil {
		t.Fatal(err)
	}
	if err := c.RefreshBalance(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("RefreshBalance error = %v, want %v", err, boom)
	}
	if got := c.BalanceState(); got != entry.BalancePending {
		t.Errorf("state after failed refresh = %v, want pending", got)
	}
	if got := c.BalanceLabel(); got != entry.PendingLabel {
		t.Errorf("label after failed refresh = %q, want %q", got, entry.PendingLabel)
	}
}

// gateProvider blocks every fetch until released, so tests can interleave
// selection changes with in-flight fetches deterministically.
type gateProvider struct {
	entered chan struct{}
	release chan struct{}
	units   sdkmath.Int
	once    sync.Once
}

func (g *gateProvider) Balance(ctx context.Context, chainID, address, denom string) (sdkmath.Int, error) {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	return g.units, nil
}

func TestStaleBalanceDropped(t *testing.T) {
	gate := &gateProvider{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		units:   sdkmath.NewInt(77),
	}
	sink := &fakeSink{}
	c := New(registry.Default(), gate, sink)
	c.SetAddress("kling1abc")

	if err := c.SelectAsset("klingnet", "KGX"); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.RefreshBalance(context.Background())
	}()
	<-gate.entered

	// Switch assets while the fetch is stuck; the old result must not land.
	if err := c.SelectAsset("klingnet", "KUSD"); err != nil {
		t.Fatal(err)
	}
	close(gate.release)
	wg.Wait()

	if got := c.BalanceState(); got != entry.BalancePending {
		t.Errorf("state after stale fetch = %v, want pending", got)
	}
	if got := c.BalanceLabel(); got != entry.PendingLabel {
		t.Errorf("label after stale fetch = %q, want %q", got, entry.PendingLabel)
	}
}

func TestSetAddressInvalidatesBalance(t *testing.T) {
	c, mem, _ := newTestController(t)
	mem.Set("klingnet", "kling1abc", "kgx", sdkmath.NewInt(10))
	mem.Set("klingnet", "kling1xyz", "kgx", sdkmath.NewInt(2_000_000_000_000))

	if err := c.SelectAsset("klingnet", "KGX"); err != nil {
		t.Fatal(err)
	}
	if err := c.RefreshBalance(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := c.BalanceState(); got != entry.BalanceReady {
		t.Fatalf("state = %v, want ready", got)
	}

	c.SetAddress("kling1xyz")
	if got := c.BalanceState(); got != entry.BalancePending {
		t.Errorf("state after address change = %v, want pending", got)
	}

	if err := c.RefreshBalance(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := c.BalanceLabel(); got != "2" {
		t.Errorf("label for new address = %q, want %q", got, "2")
	}
}

func TestAmount(t *testing.T) {
	c, _, _ := newTestController(t)

	if _, ok := c.Amount(); ok {
		t.Error("Amount without selection must report false")
	}

	if err := c.SelectAsset("klingnet", "KUSD"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Amount(); ok {
		t.Error("Amount with empty field must report false")
	}

	c.ProposeEdit(entry.EditProposal{Current: "", Inserted: "1", Kind: entry.EditInsert})
	c.ProposeEdit(entry.EditProposal{Current: "1", Inserted: ",", Kind: entry.EditInsert})
	c.ProposeEdit(entry.EditProposal{Current: "1,", Inserted: "5", Kind: entry.EditInsert})

	units, ok := c.Amount()
	if !ok {
		t.Fatal("Amount must parse committed text")
	}
	if !units.Equal(sdkmath.NewInt(1_500_000)) {
		t.Errorf("Amount = %s, want 1500000", units)
	}
}

func TestClearSelection(t *testing.T) {
	c, mem, sink := newTestController(t)
	mem.Set("klingnet", "kling1abc", "kgx", sdkmath.NewInt(10))

	if err := c.SelectAsset("klingnet", "KGX"); err != nil {
		t.Fatal(err)
	}
	if err := c.RefreshBalance(context.Background()); err != nil {
		t.Fatal(err)
	}

	c.ClearSelection()
	if _, _, ok := c.Selection(); ok {
		t.Error("Selection must report false after clearing")
	}
	if got := c.BalanceLabel(); got != "0" {
		t.Errorf("label after clearing = %q, want %q", got, "0")
	}
	if got := sink.last(); got != "" {
		t.Errorf("clearing must reset the field through the sink, got %q", got)
	}
}

func TestRefreshWithoutSelection(t *testing.T) {
	c, _, _ := newTestController(t)
	if err := c.RefreshBalance(context.Background()); err != nil {
		t.Errorf("RefreshBalance without selection = %v, want nil", err)
	}
	if got := c.BalanceState(); got != entry.BalanceNone {
		t.Errorf("state = %v, want none", got)
	}
}
