package cashcount

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/shopspring/decimal"

    "backend/models"
)

// Classification notes written into a saved cash count.
const (
    ClassBalanced = "balanced"
    ClassSurplus  = "surplus"
    ClassShortage = "shortage"
)

// RoleAdmin is the only role allowed to save a cash count. Viewers may open
// and recompute but every write is rejected here, not just hidden in the UI.
const RoleAdmin = "admin"

// balanceEpsilon absorbs rounding: |difference| below one cent is balanced.
var balanceEpsilon = decimal.NewFromFloat(0.01)

// ErrPrivilegeDenied is returned before any store call when a non-admin
// actor attempts a save.
var ErrPrivilegeDenied = errors.New("cashcount: save requires admin privilege")

// ErrNegativeNotConfirmed is returned when the computed total is negative
// and the caller's confirmation predicate declined the save.
var ErrNegativeNotConfirmed = errors.New("cashcount: negative total not confirmed")

// ReadError wraps a failed Transaction/Snapshot store query. Not retried;
// the caller re-triggers OpenDate manually.
type ReadError struct {
    Op  string
    Err error
}

func (e *ReadError) Error() string { return fmt.Sprintf("cashcount: %s: %v", e.Op, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps a failed snapshot upsert. The session's adjustments are
// left untouched so the operator can retry without re-entering counts.
type WriteError struct {
    Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("cashcount: upsert snapshot: %v", e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// TransactionStore yields the cumulative net income (income minus expense)
// over all transactions dated on or before the cutoff date.
type TransactionStore interface {
    SumNetIncome(ctx context.Context, cutoff time.Time) (decimal.Decimal, error)
}

// SnapshotStore persists at most one cash count per calendar date.
// Absent records are reported as (nil, nil), not as errors.
type SnapshotStore interface {
    GetSnapshot(ctx context.Context, date time.Time) (*models.CashCount, error)
    GetMostRecentBefore(ctx context.Context, date time.Time) (*models.CashCount, error)
    UpsertSnapshot(ctx context.Context, snapshot *models.CashCount) error
}

// Actor is the caller identity passed explicitly into every write.
type Actor struct {
    ID   string
    Role string
}

// CanWrite reports whether the actor may save a cash count.
func (a Actor) CanWrite() bool { return a.Role == RoleAdmin }

// Session is the working state for one open date: the read-only baseline
// carried over from the predecessor snapshot plus the operator's pending
// per-denomination adjustments. It is rebuilt by OpenDate and never stored.
type Session struct {
    Date        time.Time
    Base        map[string]int64
    Adjustments map[string]int64
    Expected    decimal.Decimal
    HasHistory  bool
}

// SetAdjustment records the pending delta for one denomination. The value
// may be negative; empty UI input maps to 0 at the HTTP layer.
func (s *Session) SetAdjustment(code string, qty int64) error {
    if _, ok := FaceValue(code); !ok {
        return fmt.Errorf("cashcount: unknown denomination %q", code)
    }
    s.Adjustments[code] = qty
    return nil
}

// ResetAdjustments zeroes every pending adjustment. The persisted snapshot,
// if any, is untouched until Save.
func (s *Session) ResetAdjustments() {
    for code := range s.Adjustments {
        s.Adjustments[code] = 0
    }
}

// EffectiveQty is the clamped physical count for one denomination: the base
// plus the pending adjustment, floored at zero. The raw adjustment is kept
// as entered so the operator can see an over-subtraction instead of having
// the input silently rewritten.
func (s *Session) EffectiveQty(code string) int64 {
    q := s.Base[code] + s.Adjustments[code]
    if q < 0 {
        return 0
    }
    return q
}

// ComputedTotal sums face value times clamped effective quantity over the
// whole denomination set. Pure and cheap; the UI calls it after every edit.
func (s *Session) ComputedTotal() decimal.Decimal {
    total := decimal.Zero
    for _, code := range Denominations {
        v, _ := FaceValue(code)
        total = total.Add(v.Mul(decimal.NewFromInt(s.EffectiveQty(code))))
    }
    return total
}

// Classify maps a counted-minus-expected difference to its note.
func Classify(difference decimal.Decimal) string {
    if difference.Abs().LessThan(balanceEpsilon) {
        return ClassBalanced
    }
    if difference.Sign() > 0 {
        return ClassSurplus
    }
    return ClassShortage
}

// Engine reconciles physical cash counts against recorded net income.
type Engine struct {
    Transactions TransactionStore
    Snapshots    SnapshotStore
}

func NewEngine(transactions TransactionStore, snapshots SnapshotStore) *Engine {
    return &Engine{Transactions: transactions, Snapshots: snapshots}
}

// Day normalizes a timestamp to its UTC calendar date. All store lookups and
// snapshot keys go through this.
func Day(t time.Time) time.Time {
    return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// OpenDate loads the baseline for a target date: cumulative expected income,
// the predecessor snapshot's quantities as the base, and initial adjustments.
// Reopening an already-saved date reconstructs the adjustments that produced
// it (saved quantity minus base), so the day shows the same numbers instead
// of resetting to zero. A date with no predecessor starts from an all-zero
// base with HasHistory false.
func (e *Engine) OpenDate(ctx context.Context, date time.Time) (*Session, error) {
    date = Day(date)

    expected, err := e.Transactions.SumNetIncome(ctx, date)
    if err != nil {
        return nil, &ReadError{Op: "sum net income", Err: err}
    }

    prev, err := e.Snapshots.GetMostRecentBefore(ctx, date)
    if err != nil {
        return nil, &ReadError{Op: "load previous snapshot", Err: err}
    }

    existing, err := e.Snapshots.GetSnapshot(ctx, date)
    if err != nil {
        return nil, &ReadError{Op: "load snapshot", Err: err}
    }

    sess := &Session{
        Date:        date,
        Base:        make(map[string]int64, len(Denominations)),
        Adjustments: make(map[string]int64, len(Denominations)),
        Expected:    expected,
        HasHistory:  prev != nil,
    }
    for _, code := range Denominations {
        if prev != nil {
            sess.Base[code] = prev.Denominations[code]
        }
        if existing != nil {
            sess.Adjustments[code] = existing.Denominations[code] - sess.Base[code]
        }
    }
    return sess, nil
}

// Save persists the session as the absolute cash count for its date.
// Adjustments themselves are not stored: each denomination's final quantity
// is the clamped base+adjustment, so history stays in absolute terms.
// confirmNegative is consulted only when the computed total is negative;
// a nil predicate declines. The upsert is a single replace-by-date, so a
// failure commits nothing and the session stays editable for a retry.
func (e *Engine) Save(ctx context.Context, sess *Session, actor Actor, confirmNegative func(total decimal.Decimal) bool) (*models.CashCount, error) {
    if !actor.CanWrite() {
        return nil, ErrPrivilegeDenied
    }

    counted := sess.ComputedTotal()
    if counted.Sign() < 0 {
        if confirmNegative == nil || !confirmNegative(counted) {
            return nil, ErrNegativeNotConfirmed
        }
    }

    final := make(map[string]int64, len(Denominations))
    for _, code := range Denominations {
        final[code] = sess.EffectiveQty(code)
    }

    difference := counted.Sub(sess.Expected)
    snapshot := &models.CashCount{
        Date:          sess.Date,
        Expected:      sess.Expected.InexactFloat64(),
        Counted:       counted.InexactFloat64(),
        Difference:    difference.InexactFloat64(),
        Denominations: final,
        Notes:         Classify(difference),
        SavedBy:       actor.ID,
        SavedAt:       time.Now(),
    }

    if err := e.Snapshots.UpsertSnapshot(ctx, snapshot); err != nil {
        return nil, &WriteError{Err: err}
    }
    return snapshot, nil
}
