package configuration

import (
	"care-pay/models"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// hold connection to db
var DB *gorm.DB

// initializing db connection
func ConfigDB() {

	err1 := godotenv.Load(".env")
	if err1 != nil {
		log.Fatal("Error loading .env file")
	}
	dsn := os.Getenv("DB")
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect to the database")
	}

	DB.AutoMigrate(
		&models.Doctor{},
		&models.Patient{},
		&models.Admin{},
		&models.Appointment{},
		&models.PayeeAccount{},
		&models.DoctorPricing{},
		&models.PaymentRequest{},
		&models.Transaction{},
		&models.Wallet{},
	)

}
