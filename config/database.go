package config

import (
    "context"
    "log"
    "os"
    "time"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"
)

var (
    Client                *mongo.Client
    UserCollection        *mongo.Collection
    SessionCollection     *mongo.Collection
    TransactionCollection *mongo.Collection
    CashCountCollection   *mongo.Collection
    ServiceCollection     *mongo.Collection
    SettingsCollection    *mongo.Collection
    TicketScanCollection  *mongo.Collection
    ImportLogCollection   *mongo.Collection
)

func ConnectDatabase() {
    client, err := mongo.NewClient(options.Client().ApplyURI(os.Getenv("MONGO_URI")))
    if err != nil {
        log.Fatal(err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    err = client.Connect(ctx)
    if err != nil {
        log.Fatal(err)
    }

    err = client.Ping(ctx, nil)
    if err != nil {
        log.Fatal(err)
    }

    Client = client
    db := client.Database("laundromat")

    UserCollection = db.Collection("users")
    SessionCollection = db.Collection("sessions")
    TransactionCollection = db.Collection("transactions")
    CashCountCollection = db.Collection("cashcounts")
    ServiceCollection = db.Collection("services")
    SettingsCollection = db.Collection("settings")
    TicketScanCollection = db.Collection("ticketscans")
    ImportLogCollection = db.Collection("importlogs")

    ensureIndexes(ctx)
    log.Println("Connected to MongoDB")
}

// ensureIndexes keeps the date-range queries (transaction sums, previous
// cash count lookup) on indexes instead of collection scans.
func ensureIndexes(ctx context.Context) {
    _, err := TransactionCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
        Keys: bson.D{{Key: "date", Value: 1}},
    })
    if err != nil {
        log.Printf("Failed to create transactions.date index: %v", err)
    }

    _, err = CashCountCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
        Keys:    bson.D{{Key: "date", Value: -1}},
        Options: options.Index().SetUnique(true),
    })
    if err != nil {
        log.Printf("Failed to create cashcounts.date index: %v", err)
    }
}
