package routes

import (
    "github.com/gin-gonic/gin"

    "backend/controllers"
    "backend/middleware"
)

func InitializeRoutes(router *gin.Engine) {
    router.POST("/login", controllers.Login)
    router.POST("/forgot-password", controllers.RequestPasswordReset)
    router.POST("/verify-code", controllers.VerifyCode)
    router.POST("/reset-password", controllers.ResetPassword)
    router.Static("/uploads", "./uploads")

    admin := router.Group("/admin")
    admin.Use(middleware.AuthMiddleware("admin"))
    {
        admin.POST("/transactions", controllers.AddTransaction)
        admin.GET("/transactions", controllers.GetTransactions)
        admin.PUT("/transactions/:id", controllers.UpdateTransaction)
        admin.DELETE("/transactions/:id", controllers.DeleteTransaction)
        admin.GET("/calendar", controllers.GetCalendar)
        admin.GET("/dashboard", controllers.Dashboard)

        admin.GET("/import/template", controllers.DownloadImportTemplate)
        admin.POST("/import", controllers.ImportTransactions)
        admin.GET("/import/logs", controllers.GetImportLogs)

        admin.POST("/scans", controllers.ScanTicket)
        admin.GET("/scans", controllers.ListTicketScans)
        admin.PUT("/scans/:id/accept", controllers.AcceptTicketScan)
        admin.PUT("/scans/:id/reject", controllers.RejectTicketScan)

        admin.POST("/services", controllers.CreateService)
        admin.GET("/services", controllers.GetAllServices)
        admin.PUT("/services/:id", controllers.EditService)
        admin.DELETE("/services/:id", controllers.DeleteService)

        admin.GET("/settings", controllers.GetSettings)
        admin.PUT("/settings", controllers.UpdateSettings)

        admin.GET("/users", controllers.ListUsers)
        admin.POST("/users", controllers.AddUser)
        admin.PUT("/users/:id", controllers.UpdateUser)
        admin.DELETE("/users/:id", controllers.DeleteUser)

        admin.GET("/cashcounts", controllers.ListCashCounts)
        admin.GET("/cashcount/:date", controllers.OpenCashCount)
        admin.POST("/cashcount/:date", controllers.SaveCashCount)
    }

    viewer := router.Group("/viewer")
    viewer.Use(middleware.AuthMiddleware("viewer"))
    {
        viewer.GET("/transactions", controllers.GetTransactions)
        viewer.GET("/calendar", controllers.GetCalendar)
        viewer.GET("/dashboard", controllers.Dashboard)
        viewer.GET("/services", controllers.GetAllServices)
        viewer.GET("/settings", controllers.GetSettings)
        viewer.GET("/cashcounts", controllers.ListCashCounts)
        viewer.GET("/cashcount/:date", controllers.OpenCashCount)
    }
}
