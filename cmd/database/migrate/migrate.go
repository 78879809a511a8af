package migration

import (
	"fmt"
	"log"

	"github.com/christinemirimba/VibeCodingHackathon/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeRating{}); err != nil {
		log.Fatalf("Error migrating recipe rating database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserFavorite{}); err != nil {
		log.Fatalf("Error migrating user favorite database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeRequest{}); err != nil {
		log.Fatalf("Error migrating recipe request database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Payment{}); err != nil {
		log.Fatalf("Error migrating payment database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
