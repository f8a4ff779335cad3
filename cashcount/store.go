package cashcount

import (
    "context"
    "time"

    "github.com/shopspring/decimal"
    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"

    "backend/models"
)

// MongoTransactionStore sums transactions with a single aggregation pass.
type MongoTransactionStore struct {
    Collection *mongo.Collection
}

func (s *MongoTransactionStore) SumNetIncome(ctx context.Context, cutoff time.Time) (decimal.Decimal, error) {
    // date <= cutoff at whole-day granularity
    end := Day(cutoff).AddDate(0, 0, 1)

    pipeline := mongo.Pipeline{
        bson.D{{Key: "$match", Value: bson.M{"date": bson.M{"$lt": end}}}},
        bson.D{{Key: "$group", Value: bson.M{
            "_id":   "$type",
            "total": bson.M{"$sum": "$amount"},
        }}},
    }

    cursor, err := s.Collection.Aggregate(ctx, pipeline)
    if err != nil {
        return decimal.Zero, err
    }
    defer cursor.Close(ctx)

    net := decimal.Zero
    for cursor.Next(ctx) {
        var row struct {
            Type  string  `bson:"_id"`
            Total float64 `bson:"total"`
        }
        if err := cursor.Decode(&row); err != nil {
            return decimal.Zero, err
        }
        switch row.Type {
        case "income":
            net = net.Add(decimal.NewFromFloat(row.Total))
        case "expense":
            net = net.Sub(decimal.NewFromFloat(row.Total))
        }
    }
    if err := cursor.Err(); err != nil {
        return decimal.Zero, err
    }
    return net, nil
}

// MongoSnapshotStore keeps one cash count document per calendar date.
type MongoSnapshotStore struct {
    Collection *mongo.Collection
}

func (s *MongoSnapshotStore) GetSnapshot(ctx context.Context, date time.Time) (*models.CashCount, error) {
    var snapshot models.CashCount
    err := s.Collection.FindOne(ctx, bson.M{"date": Day(date)}).Decode(&snapshot)
    if err == mongo.ErrNoDocuments {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return &snapshot, nil
}

// GetMostRecentBefore runs as an indexed strictly-less-than lookup sorted by
// date descending, limit one, so it stays cheap as history grows.
func (s *MongoSnapshotStore) GetMostRecentBefore(ctx context.Context, date time.Time) (*models.CashCount, error) {
    opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})
    var snapshot models.CashCount
    err := s.Collection.FindOne(ctx, bson.M{"date": bson.M{"$lt": Day(date)}}, opts).Decode(&snapshot)
    if err == mongo.ErrNoDocuments {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return &snapshot, nil
}

// UpsertSnapshot replaces or inserts by date. Two operators saving the same
// date race to last-writer-wins; there is no version field (single-operator
// assumption).
func (s *MongoSnapshotStore) UpsertSnapshot(ctx context.Context, snapshot *models.CashCount) error {
    snapshot.Date = Day(snapshot.Date)
    _, err := s.Collection.ReplaceOne(
        ctx,
        bson.M{"date": snapshot.Date},
        snapshot,
        options.Replace().SetUpsert(true),
    )
    return err
}
