package cashcount

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/shopspring/decimal"

    "backend/models"
)

type fakeTransactionStore struct {
    net    decimal.Decimal
    err    error
    cutoff time.Time
}

func (f *fakeTransactionStore) SumNetIncome(ctx context.Context, cutoff time.Time) (decimal.Decimal, error) {
    f.cutoff = cutoff
    return f.net, f.err
}

type fakeSnapshotStore struct {
    byDate    map[string]*models.CashCount
    readErr   error
    writeErr  error
    upserts   int
}

func newFakeSnapshotStore() *fakeSnapshotStore {
    return &fakeSnapshotStore{byDate: make(map[string]*models.CashCount)}
}

func (f *fakeSnapshotStore) GetSnapshot(ctx context.Context, date time.Time) (*models.CashCount, error) {
    if f.readErr != nil {
        return nil, f.readErr
    }
    return f.byDate[Day(date).Format("2006-01-02")], nil
}

func (f *fakeSnapshotStore) GetMostRecentBefore(ctx context.Context, date time.Time) (*models.CashCount, error) {
    if f.readErr != nil {
        return nil, f.readErr
    }
    var best *models.CashCount
    for _, s := range f.byDate {
        if s.Date.Before(Day(date)) && (best == nil || s.Date.After(best.Date)) {
            best = s
        }
    }
    return best, nil
}

func (f *fakeSnapshotStore) UpsertSnapshot(ctx context.Context, snapshot *models.CashCount) error {
    if f.writeErr != nil {
        return f.writeErr
    }
    f.upserts++
    f.byDate[Day(snapshot.Date).Format("2006-01-02")] = snapshot
    return nil
}

var admin = Actor{ID: "u1", Role: "admin"}

func date(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestEngine(net float64) (*Engine, *fakeSnapshotStore) {
    snaps := newFakeSnapshotStore()
    tx := &fakeTransactionStore{net: decimal.NewFromFloat(net)}
    return NewEngine(tx, snaps), snaps
}

func TestEffectiveQtyClampsEachDenominationIndependently(t *testing.T) {
    sess := &Session{
        Base:        map[string]int64{"1000": 3, "500": 2},
        Adjustments: map[string]int64{"1000": -5, "500": -1},
    }

    if got := sess.EffectiveQty("1000"); got != 0 {
        t.Errorf("EffectiveQty(1000) = %d, want 0", got)
    }
    if got := sess.EffectiveQty("500"); got != 1 {
        t.Errorf("EffectiveQty(500) = %d, want 1", got)
    }
    // raw adjustment stays as entered
    if sess.Adjustments["1000"] != -5 {
        t.Errorf("adjustment rewritten to %d, want -5", sess.Adjustments["1000"])
    }
    if got := sess.ComputedTotal(); !got.Equal(decimal.NewFromInt(500)) {
        t.Errorf("ComputedTotal() = %s, want 500", got)
    }
}

func TestOpenDateWithoutHistoryStartsNeutral(t *testing.T) {
    engine, _ := newTestEngine(0)

    sess, err := engine.OpenDate(context.Background(), date(2026, time.March, 10))
    if err != nil {
        t.Fatalf("OpenDate: %v", err)
    }
    if sess.HasHistory {
        t.Error("HasHistory = true, want false")
    }
    for _, code := range Denominations {
        if sess.Base[code] != 0 || sess.Adjustments[code] != 0 {
            t.Errorf("denomination %s: base=%d adj=%d, want 0/0", code, sess.Base[code], sess.Adjustments[code])
        }
    }
    if !sess.ComputedTotal().IsZero() {
        t.Errorf("ComputedTotal() = %s, want 0", sess.ComputedTotal())
    }
}

func TestSaveAndReopenReconstructsEffectiveCounts(t *testing.T) {
    engine, snaps := newTestEngine(3600)
    ctx := context.Background()

    snaps.byDate["2026-03-09"] = &models.CashCount{
        Date:          date(2026, time.March, 9),
        Denominations: map[string]int64{"1000": 2, "500": 1, "100": 3},
    }

    sess, err := engine.OpenDate(ctx, date(2026, time.March, 10))
    if err != nil {
        t.Fatalf("OpenDate: %v", err)
    }
    if !sess.HasHistory {
        t.Error("HasHistory = false, want true")
    }

    sess.SetAdjustment("1000", 1)
    sess.SetAdjustment("100", -5) // base 3, clamps to 0

    if _, err := engine.Save(ctx, sess, admin, nil); err != nil {
        t.Fatalf("Save: %v", err)
    }

    reopened, err := engine.OpenDate(ctx, date(2026, time.March, 10))
    if err != nil {
        t.Fatalf("reopen: %v", err)
    }
    for _, code := range Denominations {
        if reopened.Base[code] != sess.Base[code] {
            t.Errorf("base[%s] changed on reopen: %d != %d", code, reopened.Base[code], sess.Base[code])
        }
        want := sess.EffectiveQty(code)
        if got := reopened.Base[code] + reopened.Adjustments[code]; got != want {
            t.Errorf("reopened effective[%s] = %d, want %d", code, got, want)
        }
    }
    // clamped over-subtraction comes back as the effective count, not the raw -5
    if reopened.Adjustments["100"] != -3 {
        t.Errorf("reopened adjustment[100] = %d, want -3", reopened.Adjustments["100"])
    }
}

func TestClassifyBoundaries(t *testing.T) {
    cases := []struct {
        diff string
        want string
    }{
        {"0", ClassBalanced},
        {"0.005", ClassBalanced},
        {"-0.005", ClassBalanced},
        {"0.02", ClassSurplus},
        {"-0.02", ClassShortage},
        {"100", ClassSurplus},
        {"-100", ClassShortage},
    }
    for _, tc := range cases {
        if got := Classify(decimal.RequireFromString(tc.diff)); got != tc.want {
            t.Errorf("Classify(%s) = %s, want %s", tc.diff, got, tc.want)
        }
    }
}

func TestSaveScenarioBalancedAndSurplus(t *testing.T) {
    ctx := context.Background()

    for _, tc := range []struct {
        expected float64
        wantDiff float64
        wantNote string
    }{
        {3600, 0, ClassBalanced},
        {3500, 100, ClassSurplus},
    } {
        engine, snaps := newTestEngine(tc.expected)
        snaps.byDate["2026-03-09"] = &models.CashCount{
            Date:          date(2026, time.March, 9),
            Denominations: map[string]int64{"1000": 2, "500": 1, "100": 3},
        }

        sess, err := engine.OpenDate(ctx, date(2026, time.March, 10))
        if err != nil {
            t.Fatalf("OpenDate: %v", err)
        }
        sess.SetAdjustment("1000", 1)
        sess.SetAdjustment("500", 0)
        sess.SetAdjustment("100", -2)

        saved, err := engine.Save(ctx, sess, admin, nil)
        if err != nil {
            t.Fatalf("Save: %v", err)
        }
        if saved.Counted != 3600 {
            t.Errorf("Counted = %v, want 3600", saved.Counted)
        }
        if saved.Difference != tc.wantDiff {
            t.Errorf("Difference = %v, want %v", saved.Difference, tc.wantDiff)
        }
        if saved.Notes != tc.wantNote {
            t.Errorf("Notes = %q, want %q", saved.Notes, tc.wantNote)
        }
        if saved.Denominations["1000"] != 3 || saved.Denominations["500"] != 1 || saved.Denominations["100"] != 1 {
            t.Errorf("persisted quantities = %v, want 1000:3 500:1 100:1", saved.Denominations)
        }
    }
}

func TestSaveRejectsViewerBeforeStoreCall(t *testing.T) {
    engine, snaps := newTestEngine(0)
    sess := &Session{
        Date:        date(2026, time.March, 10),
        Base:        map[string]int64{},
        Adjustments: map[string]int64{},
    }

    _, err := engine.Save(context.Background(), sess, Actor{ID: "u2", Role: "viewer"}, nil)
    if !errors.Is(err, ErrPrivilegeDenied) {
        t.Fatalf("Save error = %v, want ErrPrivilegeDenied", err)
    }
    if snaps.upserts != 0 {
        t.Errorf("upserts = %d, want 0", snaps.upserts)
    }
}

func TestSaveSurfacesWriteFailure(t *testing.T) {
    engine, snaps := newTestEngine(0)
    snaps.writeErr = errors.New("backend unavailable")

    sess := &Session{
        Date:        date(2026, time.March, 10),
        Base:        map[string]int64{"100": 1},
        Adjustments: map[string]int64{"100": 2},
    }

    _, err := engine.Save(context.Background(), sess, admin, nil)
    var writeErr *WriteError
    if !errors.As(err, &writeErr) {
        t.Fatalf("Save error = %v, want *WriteError", err)
    }
    // adjustments survive the failed save for a retry
    if sess.Adjustments["100"] != 2 {
        t.Errorf("adjustment cleared after failed save: %d", sess.Adjustments["100"])
    }
}

func TestOpenDateSurfacesReadFailure(t *testing.T) {
    snaps := newFakeSnapshotStore()
    snaps.readErr = errors.New("timeout")
    engine := NewEngine(&fakeTransactionStore{net: decimal.Zero}, snaps)

    _, err := engine.OpenDate(context.Background(), date(2026, time.March, 10))
    var readErr *ReadError
    if !errors.As(err, &readErr) {
        t.Fatalf("OpenDate error = %v, want *ReadError", err)
    }
}

func TestSetAdjustmentRejectsUnknownDenomination(t *testing.T) {
    sess := &Session{Base: map[string]int64{}, Adjustments: map[string]int64{}}
    if err := sess.SetAdjustment("7", 1); err == nil {
        t.Error("SetAdjustment(7) error = nil, want error")
    }
}

func TestResetAdjustmentsKeepsBase(t *testing.T) {
    sess := &Session{
        Base:        map[string]int64{"1000": 2},
        Adjustments: map[string]int64{"1000": 4, "500": -1},
    }
    sess.ResetAdjustments()
    for code, adj := range sess.Adjustments {
        if adj != 0 {
            t.Errorf("adjustment[%s] = %d after reset, want 0", code, adj)
        }
    }
    if got := sess.ComputedTotal(); !got.Equal(decimal.NewFromInt(2000)) {
        t.Errorf("ComputedTotal() = %s, want 2000", got)
    }
}
