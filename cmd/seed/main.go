package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"psycenter/internal/database"
	"psycenter/internal/domain"
	"psycenter/internal/repository"
)

// Seeds the admin account and the specialists catalog. Safe to run on an
// empty database only: existing rows are wiped first.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "psycenter.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM psychologists")
	db.Exec("DELETE FROM admins")

	ctx := context.Background()

	// ================== ADMIN ==================
	log.Println("Creating admin...")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	adminRepo := repository.NewAdminRepository(db)
	admin := domain.Admin{
		Username:     "admin",
		PasswordHash: string(hash),
		DisplayName:  "Администратор центра",
	}
	if err := adminRepo.Create(ctx, &admin); err != nil {
		log.Fatal("admin create failed:", err)
	}

	// ================== PSYCHOLOGISTS ==================
	log.Println("Creating psychologists...")
	psychRepo := repository.NewPsychologistRepository(db)
	psychologists := []domain.Psychologist{
		{
			NameRu:           "Айгуль Сапарова",
			NameKz:           "Айгүл Сапарова",
			SpecializationRu: "Кризисное консультирование",
			SpecializationKz: "Дағдарыстық кеңес беру",
			Email:            "a.saparova@psycenter.kz",
			Active:           true,
		},
		{
			NameRu:           "Данияр Омаров",
			NameKz:           "Данияр Омаров",
			SpecializationRu: "Тревожные расстройства, стресс",
			SpecializationKz: "Үрей, стресс",
			Email:            "d.omarov@psycenter.kz",
			Active:           true,
		},
		{
			NameRu:           "Мария Ким",
			NameKz:           "Мария Ким",
			SpecializationRu: "Семейная терапия",
			SpecializationKz: "Отбасылық терапия",
			Email:            "m.kim@psycenter.kz",
			Active:           true,
		},
	}
	for i := range psychologists {
		if err := psychRepo.Create(ctx, &psychologists[i]); err != nil {
			log.Fatal("psychologist create failed:", err)
		}
	}

	log.Printf("Done: 1 admin, %d psychologists", len(psychologists))
}
