package controllers

import (
    "context"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/bson/primitive"
    "go.mongodb.org/mongo-driver/mongo/options"

    "backend/config"
    "backend/models"
    "backend/utils"
)

// ScanTicket accepts OCR-recognized ticket text (the client runs the OCR),
// extracts the fields it can, stores the optional photo, and saves the scan
// as a draft for review. Extraction is best effort: missing fields stay
// empty and the operator fills them in before accepting.
func ScanTicket(c *gin.Context) {
    rawText := c.PostForm("text")
    if rawText == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "OCR text is required"})
        return
    }

    fields := utils.ParseTicketText(rawText)

    scan := models.TicketScan{
        ID:           primitive.NewObjectID(),
        RawText:      rawText,
        TicketNumber: fields.TicketNumber,
        Date:         fields.Date,
        Total:        fields.Total,
        Items:        fields.Items,
        Status:       "draft",
        UserID:       c.GetString("userID"),
        CreatedAt:    time.Now(),
    }

    if file, err := c.FormFile("photo"); err == nil {
        photoURL, err := SaveTicketPhoto(c, file, scan.ID.Hex())
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
            return
        }
        scan.PhotoURL = photoURL
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    if _, err := config.TicketScanCollection.InsertOne(ctx, scan); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store scan"})
        return
    }

    c.JSON(http.StatusCreated, scan)
}

// ListTicketScans returns scans, optionally filtered by ?status=.
func ListTicketScans(c *gin.Context) {
    filter := bson.M{}
    if status := c.Query("status"); status != "" {
        filter["status"] = status
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100)
    cursor, err := config.TicketScanCollection.Find(ctx, filter, opts)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve scans"})
        return
    }
    defer cursor.Close(ctx)

    var scans []models.TicketScan
    if err := cursor.All(ctx, &scans); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode scans"})
        return
    }

    c.JSON(http.StatusOK, scans)
}

// AcceptTicketScan converts a draft scan into an income transaction. The
// request may override the extracted amount, date and category before the
// transaction is written.
func AcceptTicketScan(c *gin.Context) {
    objID, err := primitive.ObjectIDFromHex(c.Param("id"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scan ID"})
        return
    }

    var input struct {
        Amount   float64 `json:"amount"`
        Date     string  `json:"date"`
        Category string  `json:"category"`
    }
    if err := c.ShouldBindJSON(&input); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    var scan models.TicketScan
    if err := config.TicketScanCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&scan); err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "Scan not found"})
        return
    }
    if scan.Status != "draft" {
        c.JSON(http.StatusConflict, gin.H{"error": "Scan already processed"})
        return
    }

    amount := scan.Total
    if input.Amount > 0 {
        amount = input.Amount
    }
    if amount <= 0 {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Amount is required"})
        return
    }

    date := scan.Date
    if input.Date != "" {
        date, err = utils.ParseFlexibleDate(input.Date)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
            return
        }
    }
    if date.IsZero() {
        date = time.Now().UTC()
    }

    category := input.Category
    if category == "" {
        category = "washing"
    }

    tx := models.Transaction{
        ID:       primitive.NewObjectID(),
        Type:     "income",
        Amount:   amount,
        Category: category,
        Note:     "Ticket " + scan.TicketNumber,
        Date:     date,
        Source:   "scan",
        UserID:   c.GetString("userID"),
        Created:  time.Now(),
    }
    if _, err := config.TransactionCollection.InsertOne(ctx, tx); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
        return
    }

    _, err = config.TicketScanCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{
        "status":        "accepted",
        "transactionid": tx.ID.Hex(),
    }})
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction created but scan not updated"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Scan accepted", "transaction": tx})
}

// RejectTicketScan marks a draft scan as rejected.
func RejectTicketScan(c *gin.Context) {
    objID, err := primitive.ObjectIDFromHex(c.Param("id"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scan ID"})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    result, err := config.TicketScanCollection.UpdateOne(ctx,
        bson.M{"_id": objID, "status": "draft"},
        bson.M{"$set": bson.M{"status": "rejected"}},
    )
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update scan"})
        return
    }
    if result.MatchedCount == 0 {
        c.JSON(http.StatusNotFound, gin.H{"error": "Draft scan not found"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Scan rejected"})
}
