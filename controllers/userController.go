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

// ListUsers returns all staff accounts without password hashes.
func ListUsers(c *gin.Context) {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    opts := options.Find().SetProjection(bson.M{"password": 0, "recovery_code": 0, "recovery_expires": 0})
    cursor, err := config.UserCollection.Find(ctx, bson.M{}, opts)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
        return
    }
    defer cursor.Close(ctx)

    var users []models.User
    if err := cursor.All(ctx, &users); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
        return
    }

    c.JSON(http.StatusOK, users)
}

// AddUser creates a staff account with role "admin" or "viewer".
func AddUser(c *gin.Context) {
    var user models.User
    if err := c.ShouldBindJSON(&user); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    if user.Email == "" || user.Password == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
        return
    }
    if user.Role != "admin" && user.Role != "viewer" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be admin or viewer"})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    count, err := config.UserCollection.CountDocuments(ctx, bson.M{"email": user.Email})
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
        return
    }
    if count > 0 {
        c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
        return
    }

    hashedPassword, err := utils.HashPassword(user.Password)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
        return
    }
    user.ID = primitive.NewObjectID()
    user.Password = hashedPassword
    user.CreatedAt = time.Now()

    if _, err := config.UserCollection.InsertOne(ctx, user); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
        return
    }

    c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "id": user.ID.Hex()})
}

// UpdateUser edits name, role, phone or password of a staff account.
func UpdateUser(c *gin.Context) {
    objID, err := primitive.ObjectIDFromHex(c.Param("id"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
        return
    }

    var input struct {
        FirstName string `json:"first_name"`
        LastName  string `json:"last_name"`
        Phone     string `json:"phone"`
        Role      string `json:"role"`
        Password  string `json:"password"`
    }
    if err := c.ShouldBindJSON(&input); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    updateFields := bson.M{}
    if input.FirstName != "" {
        updateFields["first_name"] = input.FirstName
    }
    if input.LastName != "" {
        updateFields["last_name"] = input.LastName
    }
    if input.Phone != "" {
        updateFields["phone"] = input.Phone
    }
    if input.Role != "" {
        if input.Role != "admin" && input.Role != "viewer" {
            c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be admin or viewer"})
            return
        }
        updateFields["role"] = input.Role
    }
    if input.Password != "" {
        hashedPassword, err := utils.HashPassword(input.Password)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
            return
        }
        updateFields["password"] = hashedPassword
    }

    if len(updateFields) == 0 {
        c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    result, err := config.UserCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateFields})
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
        return
    }
    if result.MatchedCount == 0 {
        c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// DeleteUser removes a staff account. The caller cannot delete itself.
func DeleteUser(c *gin.Context) {
    objID, err := primitive.ObjectIDFromHex(c.Param("id"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
        return
    }

    if callerID, _ := c.Get("userID"); callerID == objID.Hex() {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    result, err := config.UserCollection.DeleteOne(ctx, bson.M{"_id": objID})
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
        return
    }
    if result.DeletedCount == 0 {
        c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
