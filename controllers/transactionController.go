package controllers

import (
    "context"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/bson/primitive"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"

    "backend/config"
    "backend/models"
    "backend/utils"
)

// AddTransaction logs one income or expense entry.
func AddTransaction(c *gin.Context) {
    var input struct {
        Type     string  `json:"type" binding:"required"`
        Amount   float64 `json:"amount" binding:"required"`
        Category string  `json:"category" binding:"required"`
        Method   string  `json:"method"`
        Note     string  `json:"note"`
        Date     string  `json:"date" binding:"required"`
    }
    if err := c.ShouldBindJSON(&input); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    if input.Type != "income" && input.Type != "expense" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be income or expense"})
        return
    }
    if input.Amount <= 0 {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
        return
    }
    date, err := utils.ParseFlexibleDate(input.Date)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
        return
    }

    tx := models.Transaction{
        ID:       primitive.NewObjectID(),
        Type:     input.Type,
        Amount:   input.Amount,
        Category: input.Category,
        Method:   input.Method,
        Note:     input.Note,
        Date:     date,
        Source:   "manual",
        UserID:   c.GetString("userID"),
        Created:  time.Now(),
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    if _, err := config.TransactionCollection.InsertOne(ctx, tx); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
        return
    }

    c.JSON(http.StatusCreated, tx)
}

// GetTransactions lists entries filtered by date range, type and category,
// newest first.
func GetTransactions(c *gin.Context) {
    filter := bson.M{}

    dateFilter := bson.M{}
    if from := c.Query("from"); from != "" {
        t, err := utils.ParseFlexibleDate(from)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
            return
        }
        dateFilter["$gte"] = t
    }
    if to := c.Query("to"); to != "" {
        t, err := utils.ParseFlexibleDate(to)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
            return
        }
        dateFilter["$lt"] = t.AddDate(0, 0, 1)
    }
    if len(dateFilter) > 0 {
        filter["date"] = dateFilter
    }
    if txType := c.Query("type"); txType != "" {
        filter["type"] = txType
    }
    if category := c.Query("category"); category != "" {
        filter["category"] = category
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created", Value: -1}})
    cursor, err := config.TransactionCollection.Find(ctx, filter, opts)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
        return
    }
    defer cursor.Close(ctx)

    var transactions []models.Transaction
    if err := cursor.All(ctx, &transactions); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode transactions"})
        return
    }

    var income, expense float64
    for _, tx := range transactions {
        if tx.Type == "income" {
            income += tx.Amount
        } else {
            expense += tx.Amount
        }
    }

    c.JSON(http.StatusOK, gin.H{
        "transactions": transactions,
        "total":        len(transactions),
        "income":       utils.TruncateToTwoDecimals(income),
        "expense":      utils.TruncateToTwoDecimals(expense),
        "net":          utils.TruncateToTwoDecimals(income - expense),
    })
}

// UpdateTransaction edits a single entry.
func UpdateTransaction(c *gin.Context) {
    objID, err := primitive.ObjectIDFromHex(c.Param("id"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
        return
    }

    var input struct {
        Type     string  `json:"type"`
        Amount   float64 `json:"amount"`
        Category string  `json:"category"`
        Method   string  `json:"method"`
        Note     string  `json:"note"`
        Date     string  `json:"date"`
    }
    if err := c.ShouldBindJSON(&input); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    updateFields := bson.M{}
    if input.Type != "" {
        if input.Type != "income" && input.Type != "expense" {
            c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be income or expense"})
            return
        }
        updateFields["type"] = input.Type
    }
    if input.Amount > 0 {
        updateFields["amount"] = input.Amount
    }
    if input.Category != "" {
        updateFields["category"] = input.Category
    }
    if input.Method != "" {
        updateFields["method"] = input.Method
    }
    if input.Note != "" {
        updateFields["note"] = input.Note
    }
    if input.Date != "" {
        date, err := utils.ParseFlexibleDate(input.Date)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
            return
        }
        updateFields["date"] = date
    }

    if len(updateFields) == 0 {
        c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    result, err := config.TransactionCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateFields})
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
        return
    }
    if result.MatchedCount == 0 {
        c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Transaction updated successfully"})
}

// DeleteTransaction removes a single entry.
func DeleteTransaction(c *gin.Context) {
    objID, err := primitive.ObjectIDFromHex(c.Param("id"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    result, err := config.TransactionCollection.DeleteOne(ctx, bson.M{"_id": objID})
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
        return
    }
    if result.DeletedCount == 0 {
        c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// GetCalendar returns per-day income/expense/net totals for one month
// (?month=2026-03).
func GetCalendar(c *gin.Context) {
    month := c.Query("month")
    start, err := time.Parse("2006-01", month)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
        return
    }
    end := start.AddDate(0, 1, 0)

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    pipeline := mongo.Pipeline{
        bson.D{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": start, "$lt": end}}}},
        bson.D{{Key: "$group", Value: bson.M{
            "_id": bson.M{
                "day":  bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$date"}},
                "type": "$type",
            },
            "total": bson.M{"$sum": "$amount"},
        }}},
    }

    cursor, err := config.TransactionCollection.Aggregate(ctx, pipeline)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate transactions"})
        return
    }
    defer cursor.Close(ctx)

    type dayTotals struct {
        Date    string  `json:"date"`
        Income  float64 `json:"income"`
        Expense float64 `json:"expense"`
        Net     float64 `json:"net"`
    }
    days := make(map[string]*dayTotals)

    for cursor.Next(ctx) {
        var row struct {
            ID struct {
                Day  string `bson:"day"`
                Type string `bson:"type"`
            } `bson:"_id"`
            Total float64 `bson:"total"`
        }
        if err := cursor.Decode(&row); err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode aggregation"})
            return
        }
        d, ok := days[row.ID.Day]
        if !ok {
            d = &dayTotals{Date: row.ID.Day}
            days[row.ID.Day] = d
        }
        switch row.ID.Type {
        case "income":
            d.Income = row.Total
        case "expense":
            d.Expense = row.Total
        }
    }
    if err := cursor.Err(); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing transactions"})
        return
    }

    result := []dayTotals{}
    for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
        key := d.Format("2006-01-02")
        if t, ok := days[key]; ok {
            t.Net = utils.TruncateToTwoDecimals(t.Income - t.Expense)
            result = append(result, *t)
        } else {
            result = append(result, dayTotals{Date: key})
        }
    }

    c.JSON(http.StatusOK, gin.H{"month": month, "days": result})
}

// Dashboard returns today and month-to-date totals, an expense/income
// breakdown by category, and the latest entries.
func Dashboard(c *gin.Context) {
    now := time.Now().UTC()
    dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
    monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    today, err := sumByType(ctx, dayStart, dayStart.AddDate(0, 0, 1))
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate today"})
        return
    }
    month, err := sumByType(ctx, monthStart, monthStart.AddDate(0, 1, 0))
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate month"})
        return
    }

    pipeline := mongo.Pipeline{
        bson.D{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": monthStart}}}},
        bson.D{{Key: "$group", Value: bson.M{
            "_id":   bson.M{"category": "$category", "type": "$type"},
            "total": bson.M{"$sum": "$amount"},
        }}},
        bson.D{{Key: "$sort", Value: bson.M{"total": -1}}},
    }
    cursor, err := config.TransactionCollection.Aggregate(ctx, pipeline)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate categories"})
        return
    }
    defer cursor.Close(ctx)

    type categoryTotal struct {
        Category string  `json:"category"`
        Type     string  `json:"type"`
        Total    float64 `json:"total"`
    }
    var categories []categoryTotal
    for cursor.Next(ctx) {
        var row struct {
            ID struct {
                Category string `bson:"category"`
                Type     string `bson:"type"`
            } `bson:"_id"`
            Total float64 `bson:"total"`
        }
        if err := cursor.Decode(&row); err != nil {
            continue
        }
        categories = append(categories, categoryTotal{Category: row.ID.Category, Type: row.ID.Type, Total: row.Total})
    }

    opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}}).SetLimit(10)
    recentCursor, err := config.TransactionCollection.Find(ctx, bson.M{}, opts)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent transactions"})
        return
    }
    defer recentCursor.Close(ctx)

    var recent []models.Transaction
    if err := recentCursor.All(ctx, &recent); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode recent transactions"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "today":      today,
        "month":      month,
        "categories": categories,
        "recent":     recent,
    })
}

func sumByType(ctx context.Context, from, to time.Time) (gin.H, error) {
    pipeline := mongo.Pipeline{
        bson.D{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": from, "$lt": to}}}},
        bson.D{{Key: "$group", Value: bson.M{
            "_id":   "$type",
            "total": bson.M{"$sum": "$amount"},
        }}},
    }

    cursor, err := config.TransactionCollection.Aggregate(ctx, pipeline)
    if err != nil {
        return nil, err
    }
    defer cursor.Close(ctx)

    var income, expense float64
    for cursor.Next(ctx) {
        var row struct {
            Type  string  `bson:"_id"`
            Total float64 `bson:"total"`
        }
        if err := cursor.Decode(&row); err != nil {
            return nil, err
        }
        switch row.Type {
        case "income":
            income = row.Total
        case "expense":
            expense = row.Total
        }
    }
    if err := cursor.Err(); err != nil {
        return nil, err
    }

    return gin.H{
        "income":  utils.TruncateToTwoDecimals(income),
        "expense": utils.TruncateToTwoDecimals(expense),
        "net":     utils.TruncateToTwoDecimals(income - expense),
    }, nil
}
