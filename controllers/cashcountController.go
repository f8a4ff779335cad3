package controllers

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/shopspring/decimal"
    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo/options"

    "backend/cashcount"
    "backend/config"
    "backend/models"
)

func newCashCountEngine() *cashcount.Engine {
    return cashcount.NewEngine(
        &cashcount.MongoTransactionStore{Collection: config.TransactionCollection},
        &cashcount.MongoSnapshotStore{Collection: config.CashCountCollection},
    )
}

func cashCountActor(c *gin.Context) cashcount.Actor {
    return cashcount.Actor{ID: c.GetString("userID"), Role: c.GetString("role")}
}

func sessionResponse(sess *cashcount.Session) gin.H {
    return gin.H{
        "date":           sess.Date.Format("2006-01-02"),
        "denominations":  cashcount.Denominations,
        "base":           sess.Base,
        "adjustments":    sess.Adjustments,
        "expected":       sess.Expected.InexactFloat64(),
        "computed_total": sess.ComputedTotal().InexactFloat64(),
        "has_history":    sess.HasHistory,
    }
}

// OpenCashCount loads the working state for one date: the baseline carried
// over from the previous count, the adjustments that reproduce an already
// saved count for that date, and the expected cumulative net income.
func OpenCashCount(c *gin.Context) {
    date, err := time.Parse("2006-01-02", c.Param("date"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    sess, err := newCashCountEngine().OpenDate(ctx, date)
    if err != nil {
        c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load cash count", "details": err.Error()})
        return
    }

    c.JSON(http.StatusOK, sessionResponse(sess))
}

// SaveCashCount applies the submitted adjustments and persists the absolute
// count for the date. Requires the admin role; the engine re-checks it
// before touching storage. A negative computed total goes through only with
// confirm_negative set.
func SaveCashCount(c *gin.Context) {
    date, err := time.Parse("2006-01-02", c.Param("date"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
        return
    }

    var input struct {
        Adjustments     map[string]int64 `json:"adjustments"`
        Reset           bool             `json:"reset"`
        ConfirmNegative bool             `json:"confirm_negative"`
    }
    if err := c.ShouldBindJSON(&input); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer cancel()

    engine := newCashCountEngine()
    sess, err := engine.OpenDate(ctx, date)
    if err != nil {
        c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load cash count", "details": err.Error()})
        return
    }

    if input.Reset {
        sess.ResetAdjustments()
    }
    for code, qty := range input.Adjustments {
        if err := sess.SetAdjustment(code, qty); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }
    }

    confirm := func(total decimal.Decimal) bool { return input.ConfirmNegative }
    saved, err := engine.Save(ctx, sess, cashCountActor(c), confirm)
    if err != nil {
        switch {
        case errors.Is(err, cashcount.ErrPrivilegeDenied):
            c.JSON(http.StatusForbidden, gin.H{"error": "Saving a cash count requires admin privilege"})
        case errors.Is(err, cashcount.ErrNegativeNotConfirmed):
            c.JSON(http.StatusConflict, gin.H{
                "error":            "Computed total is negative, set confirm_negative to save anyway",
                "computed_total":   sess.ComputedTotal().InexactFloat64(),
                "confirm_required": true,
            })
        default:
            c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save cash count", "details": err.Error()})
        }
        return
    }

    // reload so the response mirrors a fresh open of the saved day
    reopened, err := engine.OpenDate(ctx, date)
    if err != nil {
        c.JSON(http.StatusOK, gin.H{"saved": saved})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "saved":   saved,
        "session": sessionResponse(reopened),
    })
}

// ListCashCounts returns saved counts in a date range, newest first.
func ListCashCounts(c *gin.Context) {
    filter := bson.M{}
    dateFilter := bson.M{}
    if from := c.Query("from"); from != "" {
        t, err := time.Parse("2006-01-02", from)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
            return
        }
        dateFilter["$gte"] = t
    }
    if to := c.Query("to"); to != "" {
        t, err := time.Parse("2006-01-02", to)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
            return
        }
        dateFilter["$lte"] = t
    }
    if len(dateFilter) > 0 {
        filter["date"] = dateFilter
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(90)
    cursor, err := config.CashCountCollection.Find(ctx, filter, opts)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cash counts"})
        return
    }
    defer cursor.Close(ctx)

    var counts []models.CashCount
    if err := cursor.All(ctx, &counts); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode cash counts"})
        return
    }

    c.JSON(http.StatusOK, counts)
}
