package utils

import (
    "context"
    "fmt"
    "log"
    "time"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"

    "backend/config"
    "backend/models"
)

// SendDailyReport emails the day's income/expense totals and the latest cash
// count result to the configured report address. Runs from the scheduler at
// closing time; all failures are logged and swallowed so the job fires again
// the next day.
func SendDailyReport() {
    log.Println("Daily report job started")

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()

    var settings models.Settings
    err := config.SettingsCollection.FindOne(ctx, bson.M{"key": "app"}).Decode(&settings)
    if err != nil || settings.ReportEmail == "" {
        log.Println("Daily report skipped: no report email configured")
        return
    }

    now := time.Now()
    dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
    dayEnd := dayStart.AddDate(0, 0, 1)

    income, expense, err := sumDayTotals(ctx, dayStart, dayEnd)
    if err != nil {
        log.Printf("Daily report: failed to sum transactions: %v", err)
        return
    }

    body := fmt.Sprintf(
        "Daily summary for %s\n\nIncome: %.2f %s\nExpense: %.2f %s\nNet: %.2f %s\n",
        dayStart.Format("2006-01-02"),
        income, settings.Currency,
        expense, settings.Currency,
        income-expense, settings.Currency,
    )

    var count models.CashCount
    opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})
    err = config.CashCountCollection.FindOne(ctx, bson.M{}, opts).Decode(&count)
    if err == nil {
        body += fmt.Sprintf(
            "\nLast cash count (%s): counted %.2f, expected %.2f, difference %+.2f (%s)\n",
            count.Date.Format("2006-01-02"), count.Counted, count.Expected, count.Difference, count.Notes,
        )
    } else if err != mongo.ErrNoDocuments {
        log.Printf("Daily report: failed to load last cash count: %v", err)
    }

    subject := fmt.Sprintf("%s — daily summary %s", settings.BusinessName, dayStart.Format("2006-01-02"))
    if err := SendEmail(settings.ReportEmail, subject, body); err != nil {
        log.Printf("Daily report: failed to send email: %v", err)
        return
    }
    log.Println("Daily report sent")
}

func sumDayTotals(ctx context.Context, from, to time.Time) (float64, float64, error) {
    pipeline := mongo.Pipeline{
        bson.D{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": from, "$lt": to}}}},
        bson.D{{Key: "$group", Value: bson.M{
            "_id":   "$type",
            "total": bson.M{"$sum": "$amount"},
        }}},
    }

    cursor, err := config.TransactionCollection.Aggregate(ctx, pipeline)
    if err != nil {
        return 0, 0, err
    }
    defer cursor.Close(ctx)

    var income, expense float64
    for cursor.Next(ctx) {
        var row struct {
            Type  string  `bson:"_id"`
            Total float64 `bson:"total"`
        }
        if err := cursor.Decode(&row); err != nil {
            return 0, 0, err
        }
        switch row.Type {
        case "income":
            income = row.Total
        case "expense":
            expense = row.Total
        }
    }
    return income, expense, cursor.Err()
}
