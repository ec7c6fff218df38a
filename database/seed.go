package database

import (
	"log"

	"loja_manager/config"
	"loja_manager/constants"
	"loja_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	password := config.Config("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	email := config.Config("ADMIN_EMAIL")
	if email == "" {
		email = "admin@criatividadeeamor.com"
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("failed to hash admin password:", err)
		return
	}

	admin := model.User{
		Name:     "Administração",
		Email:    email,
		Password: string(bytes),
		Role:     constants.ROLE_ADMIN,
	}

	if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed admin user:", err)
	}
}
