package main

import (
    "log"
    "os"
    "strings"
    "time"

    "github.com/gin-contrib/cors"
    "github.com/gin-gonic/gin"
    "github.com/go-co-op/gocron"
    "github.com/joho/godotenv"
    "github.com/prometheus/client_golang/prometheus/promhttp"

    "backend/config"
    "backend/controllers"
    "backend/middleware"
    "backend/routes"
    "backend/utils"
)

func main() {
    err := godotenv.Load()
    if err != nil {
        log.Fatalf("Error loading .env file")
    }

    gin.SetMode(gin.ReleaseMode)
    log.Printf("Running in %s mode", gin.Mode())

    r := gin.Default()

    middleware.InitMetrics()
    r.Use(middleware.PrometheusMiddleware())

    r.GET("/metrics", func(c *gin.Context) {
        promhttp.Handler().ServeHTTP(c.Writer, c.Request)
    })

    r.Use(cors.New(cors.Config{
        AllowOrigins:     strings.Split(os.Getenv("CORS_ORIGINS"), ","),
        AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
        AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
        ExposeHeaders:    []string{"Content-Length"},
        AllowCredentials: true,
    }))

    tz := os.Getenv("TIMEZONE")
    if tz == "" {
        tz = "UTC"
    }
    location, err := time.LoadLocation(tz)
    if err != nil {
        log.Fatalf("Failed to load timezone %s: %v", tz, err)
    }
    s := gocron.NewScheduler(location)
    s.Every(1).Day().At("21:30").Do(utils.SendDailyReport)
    s.StartAsync()

    config.ConnectDatabase()
    controllers.InitStorage()
    routes.InitializeRoutes(r)

    port := os.Getenv("PORT")
    if port == "" {
        port = "1414"
    }

    r.Run(":" + port)
}
