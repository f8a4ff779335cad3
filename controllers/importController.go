package controllers

import (
    "context"
    "encoding/csv"
    "fmt"
    "log"
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

// DownloadImportTemplate serves a CSV skeleton for the bulk import.
func DownloadImportTemplate(c *gin.Context) {
    c.Header("Content-Disposition", `attachment; filename="transactions_template.csv"`)
    c.Header("Content-Type", "text/csv")

    w := csv.NewWriter(c.Writer)
    w.Write([]string{"Date", "Type", "Amount", "Category", "Note"})
    w.Write([]string{"2026-03-01", "income", "1500", "washing", "Wash & fold 5kg"})
    w.Write([]string{"2026-03-01", "expense", "200", "supplies", "Detergent"})
    w.Flush()
}

// ImportTransactions bulk-loads a CSV file. Column positions are detected
// from the header row when present, otherwise guessed from the first data
// row's value shapes. Rows that fail to parse are skipped and reported, not
// fatal; the surviving rows go in as one InsertMany.
func ImportTransactions(c *gin.Context) {
    file, err := c.FormFile("file")
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is required"})
        return
    }

    src, err := file.Open()
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
        return
    }
    defer src.Close()

    reader := csv.NewReader(src)
    reader.FieldsPerRecord = -1
    rows, err := reader.ReadAll()
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CSV", "details": err.Error()})
        return
    }
    if len(rows) == 0 {
        c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is empty"})
        return
    }

    columns := utils.ColumnMap{Date: -1, Amount: -1, Type: -1, Category: -1, Note: -1}
    dataRows := rows
    if utils.HasHeader(rows[0]) {
        columns = utils.DetectColumns(rows[0])
        dataRows = rows[1:]
    }
    if columns.Date == -1 || columns.Amount == -1 {
        if len(dataRows) == 0 {
            c.JSON(http.StatusBadRequest, gin.H{"error": "Could not detect date and amount columns"})
            return
        }
        shape := utils.DetectColumnsByShape(dataRows[0])
        if columns.Date == -1 {
            columns.Date = shape.Date
        }
        if columns.Amount == -1 {
            columns.Amount = shape.Amount
        }
        if columns.Note == -1 {
            columns.Note = shape.Note
        }
    }
    if columns.Date == -1 || columns.Amount == -1 {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Could not detect date and amount columns"})
        return
    }

    userID := c.GetString("userID")
    now := time.Now()

    var docs []interface{}
    var rowErrors []string
    for i, row := range dataRows {
        cell := func(idx int) string {
            if idx < 0 || idx >= len(row) {
                return ""
            }
            return row[idx]
        }

        date, err := utils.ParseFlexibleDate(cell(columns.Date))
        if err != nil {
            rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", i+1, err))
            continue
        }
        amount, err := utils.ParseAmount(cell(columns.Amount))
        if err != nil {
            rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", i+1, err))
            continue
        }

        txType, ok := utils.NormalizeTransactionType(cell(columns.Type))
        if !ok {
            // no usable type column: negative amounts are expenses
            if amount < 0 {
                txType = "expense"
            } else {
                txType = "income"
            }
        }
        if amount < 0 {
            amount = -amount
        }
        if amount == 0 {
            rowErrors = append(rowErrors, fmt.Sprintf("row %d: zero amount", i+1))
            continue
        }

        category := cell(columns.Category)
        if category == "" {
            category = "uncategorized"
        }

        docs = append(docs, models.Transaction{
            ID:       primitive.NewObjectID(),
            Type:     txType,
            Amount:   amount,
            Category: category,
            Note:     cell(columns.Note),
            Date:     date,
            Source:   "import",
            UserID:   userID,
            Created:  now,
        })
    }

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()

    inserted := 0
    if len(docs) > 0 {
        result, err := config.TransactionCollection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert transactions", "details": err.Error()})
            return
        }
        inserted = len(result.InsertedIDs)
    }

    importLog := models.ImportLog{
        ID:        primitive.NewObjectID(),
        Filename:  file.Filename,
        Total:     len(dataRows),
        Inserted:  inserted,
        Skipped:   len(rowErrors),
        Errors:    rowErrors,
        UserID:    userID,
        CreatedAt: now,
    }
    if _, err := config.ImportLogCollection.InsertOne(ctx, importLog); err != nil {
        // import already succeeded, only the log is lost
        log.Println("Failed to store import log:", err)
    }

    c.JSON(http.StatusOK, gin.H{
        "message":  "Import completed",
        "total":    len(dataRows),
        "inserted": inserted,
        "skipped":  len(rowErrors),
        "errors":   rowErrors,
    })
}

// GetImportLogs lists past import runs, newest first.
func GetImportLogs(c *gin.Context) {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(50)
    cursor, err := config.ImportLogCollection.Find(ctx, bson.M{}, opts)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve import logs"})
        return
    }
    defer cursor.Close(ctx)

    var logs []models.ImportLog
    if err := cursor.All(ctx, &logs); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode import logs"})
        return
    }

    c.JSON(http.StatusOK, logs)
}
