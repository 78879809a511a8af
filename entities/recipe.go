package entities

import (
	"github.com/google/uuid"
	"time"
)

type Recipe struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	Title           string     `gorm:"type:varchar(255);not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Ingredients     string     `gorm:"type:jsonb;not null" json:"ingredients"`
	Instructions    string     `gorm:"type:text;not null" json:"instructions"`
	CookingTime     int        `json:"cooking_time"`
	Difficulty      string     `gorm:"type:varchar(20);default:Medium" json:"difficulty"`
	Category        string     `gorm:"type:varchar(100)" json:"category,omitempty"`
	ImageURL        string     `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	NutritionalInfo string     `gorm:"type:jsonb" json:"nutritional_info,omitempty"`
	IsPremium       bool       `gorm:"default:false" json:"is_premium"`
	IsGenerated     bool       `gorm:"default:false" json:"is_generated"`
	ViewCount       int        `gorm:"default:0" json:"view_count"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

type RecipeRating struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `gorm:"not null;uniqueIndex:unique_rating" json:"recipe_id"`
	UserID   uuid.UUID `gorm:"not null;uniqueIndex:unique_rating" json:"user_id"`
	Rating   int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment  string    `gorm:"type:text" json:"comment,omitempty"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
	Timestamp
}

type UserFavorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:unique_favorite" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"not null;uniqueIndex:unique_favorite" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}

// RecipeRequest is the audit trail of the generation flow. Status moves
// pending -> processing -> completed | failed.
type RecipeRequest struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID              uuid.UUID  `json:"user_id"`
	Ingredients         string     `gorm:"type:text;not null" json:"ingredients"`
	DietaryRestrictions string     `gorm:"type:varchar(255)" json:"dietary_restrictions,omitempty"`
	CuisineType         string     `gorm:"type:varchar(100)" json:"cuisine_type,omitempty"`
	MaxCookingTime      int        `json:"max_cooking_time,omitempty"`
	Status              string     `gorm:"type:varchar(20);default:pending" json:"status"`
	GeneratedRecipeID   *uuid.UUID `json:"generated_recipe_id,omitempty"`

	User            *User   `gorm:"foreignKey:UserID" json:"-"`
	GeneratedRecipe *Recipe `gorm:"foreignKey:GeneratedRecipeID" json:"-"`
	Timestamp
}

const (
	RequestStatusPending    = "pending"
	RequestStatusProcessing = "processing"
	RequestStatusCompleted  = "completed"
	RequestStatusFailed     = "failed"
)
