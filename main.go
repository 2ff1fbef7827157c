package main

import (
	"coursebay/config"
	"coursebay/database"
	couponRoutes "coursebay/routers/couponRoutes"
	courseRoutes "coursebay/routers/courseRoutes"
	enrollmentRoutes "coursebay/routers/enrollmentRoutes"
	paymentRoutes "coursebay/routers/paymentRoutes"
	"coursebay/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	courseRoutes.SetupCourseRoutes(app)
	couponRoutes.SetupCouponRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)

	// Cancel abandoned checkouts so they don't hold enrollment slots
	utils.InitializePaymentReaper()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
