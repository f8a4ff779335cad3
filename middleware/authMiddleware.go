package middleware

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"

    "backend/utils"
)

func AuthMiddleware(role string) gin.HandlerFunc {
    return func(c *gin.Context) {
        token, err := c.Cookie("token")
        if err != nil {
            authHeader := c.GetHeader("Authorization")
            if authHeader == "" {
                c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token not provided"})
                c.Abort()
                return
            }
            parts := strings.Split(authHeader, " ")
            if len(parts) != 2 || parts[0] != "Bearer" {
                c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
                c.Abort()
                return
            }
            token = parts[1]
        }

        claims, err := utils.ValidateToken(token)
        if err != nil || claims.Role != role {
            c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
            c.Abort()
            return
        }

        c.Set("userID", claims.ID)
        c.Set("role", claims.Role)

        c.Next()
    }
}
