package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config lê variável do .env (ou do ambiente do sistema)
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Arquivo .env não encontrado, usando variáveis do sistema")
		}
	})
	return os.Getenv(key)
}
