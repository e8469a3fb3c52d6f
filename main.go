package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	allowedOrigin := getEnvOrDefault("ALLOWED_ORIGIN", "http://localhost:3001")

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Routes
	r.POST("/api/uploads", uploadFiles)
	r.GET("/api/uploads", getUploads)
	r.DELETE("/api/uploads", clearUploads)
	r.GET("/api/filters", getFilterOptions)
	r.POST("/api/summary", getSummary)
	r.POST("/api/exports/pivot", exportPivotCSV)
	r.POST("/api/exports/pop", exportPOPArchive)

	port := getEnvOrDefault("PORT", "8080")

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
