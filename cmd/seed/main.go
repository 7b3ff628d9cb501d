package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"freefood/internal/config"
	"freefood/internal/db"
	"freefood/internal/model"
	"freefood/internal/repository"
)

// defaultTags is the starting tag directory. Seeding is idempotent; existing
// names are left alone.
var defaultTags = []string{
	"Pizza",
	"Sandwiches",
	"Snacks",
	"Desserts",
	"Drinks",
	"Halal",
	"Vegetarian",
	"Vegan",
	"Gluten-Free",
}

const (
	demoEmail    = "demo@campus.edu"
	demoName     = "Demo Poster"
	demoPassword = "demo-password"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Tag{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	tagRepo := repository.NewTagRepository(gormDB)

	created := 0
	for _, name := range defaultTags {
		tag, err := tagRepo.FirstOrCreateByName(ctx, name)
		if err != nil {
			log.Fatalf("Failed to seed tag %q: %v", name, err)
		}
		created++
		log.Printf("  - tag %d: %s", tag.TagID, tag.Name)
	}
	log.Printf("Tag directory ready (%d tags)", created)

	userRepo := repository.NewUserRepository(gormDB)
	if err := seedDemoUser(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	log.Println("Seed completed successfully!")
}

// seedDemoUser creates a local-development account allowed to post events.
func seedDemoUser(ctx context.Context, repo repository.UserRepository) error {
	existing, err := repo.FindByEmail(ctx, demoEmail)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if existing != nil {
		log.Printf("Demo user already exists: %s", demoEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		return err
	}

	user := &model.User{
		Name:          demoName,
		Email:         demoEmail,
		PasswordHash:  string(hash),
		CanPostEvents: true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return err
	}
	log.Printf("Created demo user %s (id %d)", demoEmail, user.ID)
	return nil
}
