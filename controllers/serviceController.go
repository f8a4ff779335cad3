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
)

var serviceCategories = map[string]bool{
    "washing": true,
    "drying":  true,
    "ironing": true,
    "other":   true,
}

// CreateService adds a price-list entry.
func CreateService(c *gin.Context) {
    var service models.Service
    if err := c.ShouldBindJSON(&service); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    if service.Name == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
        return
    }
    if service.Price <= 0 {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
        return
    }
    if !serviceCategories[service.Category] {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be washing, drying, ironing or other"})
        return
    }

    service.ID = primitive.NewObjectID()
    service.Active = true

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    if _, err := config.ServiceCollection.InsertOne(ctx, service); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
        return
    }

    c.JSON(http.StatusCreated, service)
}

// GetAllServices lists the catalog; ?active=true narrows to active entries.
func GetAllServices(c *gin.Context) {
    filter := bson.M{}
    if c.Query("active") == "true" {
        filter["active"] = true
    }
    if category := c.Query("category"); category != "" {
        filter["category"] = category
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
    cursor, err := config.ServiceCollection.Find(ctx, filter, opts)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve services"})
        return
    }
    defer cursor.Close(ctx)

    var services []models.Service
    if err := cursor.All(ctx, &services); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode services"})
        return
    }

    c.JSON(http.StatusOK, services)
}

// EditService updates fields of a catalog entry.
func EditService(c *gin.Context) {
    objID, err := primitive.ObjectIDFromHex(c.Param("id"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
        return
    }

    var input struct {
        Name     string   `json:"name"`
        Category string   `json:"category"`
        Price    float64  `json:"price"`
        Unit     string   `json:"unit"`
        Active   *bool    `json:"active"`
    }
    if err := c.ShouldBindJSON(&input); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    updateFields := bson.M{}
    if input.Name != "" {
        updateFields["name"] = input.Name
    }
    if input.Category != "" {
        if !serviceCategories[input.Category] {
            c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be washing, drying, ironing or other"})
            return
        }
        updateFields["category"] = input.Category
    }
    if input.Price > 0 {
        updateFields["price"] = input.Price
    }
    if input.Unit != "" {
        updateFields["unit"] = input.Unit
    }
    if input.Active != nil {
        updateFields["active"] = *input.Active
    }

    if len(updateFields) == 0 {
        c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    result, err := config.ServiceCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateFields})
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
        return
    }
    if result.MatchedCount == 0 {
        c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Service updated successfully"})
}

// DeleteService removes a catalog entry.
func DeleteService(c *gin.Context) {
    objID, err := primitive.ObjectIDFromHex(c.Param("id"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    result, err := config.ServiceCollection.DeleteOne(ctx, bson.M{"_id": objID})
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
        return
    }
    if result.DeletedCount == 0 {
        c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
