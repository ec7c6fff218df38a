package main

import (
	"log"
	"os"

	"loja_manager/database"
	"loja_manager/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // uploads de arquivos digitais
	})

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     frontend,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	router.SetupRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	log.Fatal(app.Listen(":" + port))
}
