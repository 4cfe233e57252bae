package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/config"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/notify"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/routes"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	// Initialize database
	db := config.InitDB()

	// Redis backs the place search cache; nil means cache-off
	redisClient := config.InitRedis()

	// New-activity email fan-out, only when SMTP is configured
	var fanout *notify.Fanout
	mailConfig := config.GetMailConfig()
	if mailConfig.Enabled() {
		mailer := notify.NewSMTPMailer(mailConfig.Host, mailConfig.Port, mailConfig.Username, mailConfig.Password, mailConfig.From)
		fanout = notify.NewFanout(notify.NewGormRecipientStore(db), mailer)
	} else {
		log.Println("SMTP not configured, activity notifications disabled")
	}

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, db, redisClient, fanout)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
