package controllers

import (
    "context"
    "fmt"
    "log"
    "math/rand"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "go.mongodb.org/mongo-driver/bson"

    "backend/config"
    "backend/models"
    "backend/utils"
)

func generateVerificationCode() string {
    return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// Login authenticates a staff user by email and password and issues a
// role-scoped JWT.
func Login(c *gin.Context) {
    var input struct {
        Email    string `json:"email" binding:"required"`
        Password string `json:"password" binding:"required"`
    }
    if err := c.ShouldBindJSON(&input); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    var user models.User
    err := config.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
    if err != nil {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
        return
    }

    if err := utils.VerifyPassword(user.Password, input.Password); err != nil {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
        return
    }

    token, err := utils.GenerateToken(user.ID.Hex(), user.Role)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
        return
    }

    session := models.Session{
        UserID:    user.ID,
        Role:      user.Role,
        IP:        c.ClientIP(),
        Device:    c.GetHeader("User-Agent"),
        Timestamp: time.Now(),
    }
    if _, err := config.SessionCollection.InsertOne(ctx, session); err != nil {
        log.Printf("Failed to log session: %v", err)
    }

    c.JSON(http.StatusOK, gin.H{
        "token": token,
        "role":  user.Role,
        "id":    user.ID.Hex(),
        "name":  user.FirstName + " " + user.LastName,
    })
}

// RequestPasswordReset emails a short-lived verification code.
func RequestPasswordReset(c *gin.Context) {
    var input struct {
        Email string `json:"email" binding:"required"`
    }
    if err := c.ShouldBindJSON(&input); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    var user models.User
    err := config.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
    if err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
        return
    }

    code := generateVerificationCode()
    _, err = config.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
        "recovery_code":    code,
        "recovery_expires": time.Now().Add(10 * time.Minute),
    }})
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store verification code"})
        return
    }

    body := fmt.Sprintf("Your verification code: %s\nIt expires in 10 minutes. Do not share it.", code)
    if err := utils.SendEmail(user.Email, "Password reset code", body); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email", "details": err.Error()})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

func findUserByEmailAndCode(ctx context.Context, email, code string) (*models.User, error) {
    var user models.User
    err := config.UserCollection.FindOne(ctx, bson.M{
        "email":            email,
        "recovery_code":    code,
        "recovery_expires": bson.M{"$gt": time.Now()},
    }).Decode(&user)
    if err != nil {
        return nil, err
    }
    return &user, nil
}

// VerifyCode checks a reset code without consuming it.
func VerifyCode(c *gin.Context) {
    var input struct {
        Email string `json:"email" binding:"required"`
        Code  string `json:"code" binding:"required"`
    }
    if err := c.ShouldBindJSON(&input); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    if _, err := findUserByEmailAndCode(ctx, input.Email, input.Code); err != nil {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Code verified"})
}

// ResetPassword consumes a valid code and sets a new password.
func ResetPassword(c *gin.Context) {
    var input struct {
        Email       string `json:"email" binding:"required"`
        Code        string `json:"code" binding:"required"`
        NewPassword string `json:"newpassword" binding:"required"`
    }
    if err := c.ShouldBindJSON(&input); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    user, err := findUserByEmailAndCode(ctx, input.Email, input.Code)
    if err != nil {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
        return
    }

    hashedPassword, err := utils.HashPassword(input.NewPassword)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
        return
    }

    _, err = config.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
        "$set":   bson.M{"password": hashedPassword},
        "$unset": bson.M{"recovery_code": "", "recovery_expires": ""},
    })
    if err != nil {
        log.Println("Error updating user password:", err)
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating password"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
