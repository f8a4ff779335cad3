package controllers

import (
    "context"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"

    "backend/config"
    "backend/models"
)

const settingsKey = "app"

// GetSettings returns the single settings document, with defaults when it
// has never been saved.
func GetSettings(c *gin.Context) {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    var settings models.Settings
    err := config.SettingsCollection.FindOne(ctx, bson.M{"key": settingsKey}).Decode(&settings)
    if err == mongo.ErrNoDocuments {
        c.JSON(http.StatusOK, models.Settings{Key: settingsKey, Currency: "USD"})
        return
    }
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
        return
    }

    c.JSON(http.StatusOK, settings)
}

// UpdateSettings upserts the settings document.
func UpdateSettings(c *gin.Context) {
    var input struct {
        BusinessName string `json:"business_name"`
        Currency     string `json:"currency"`
        ReportEmail  string `json:"report_email"`
    }
    if err := c.ShouldBindJSON(&input); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    updateFields := bson.M{}
    if input.BusinessName != "" {
        updateFields["business_name"] = input.BusinessName
    }
    if input.Currency != "" {
        updateFields["currency"] = input.Currency
    }
    if input.ReportEmail != "" {
        updateFields["report_email"] = input.ReportEmail
    }

    if len(updateFields) == 0 {
        c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    _, err := config.SettingsCollection.UpdateOne(ctx,
        bson.M{"key": settingsKey},
        bson.M{"$set": updateFields},
        options.Update().SetUpsert(true),
    )
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully"})
}
