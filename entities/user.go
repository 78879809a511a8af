package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username             string     `gorm:"type:varchar(50);uniqueIndex" json:"username"`
	Email                string     `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	PasswordHash         string     `gorm:"type:varchar(255)" json:"-"`
	FirstName            string     `gorm:"type:varchar(50)" json:"first_name,omitempty"`
	LastName             string     `gorm:"type:varchar(50)" json:"last_name,omitempty"`
	Phone                string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role                 string     `gorm:"type:varchar(20);default:user" json:"role"`
	IsPremium            bool       `gorm:"default:false" json:"is_premium"`
	PremiumExpiry        *time.Time `gorm:"type:timestamp" json:"premium_expiry,omitempty"`
	FreeRecipesRemaining int        `gorm:"default:10;check:free_recipes_remaining >= 0" json:"free_recipes_remaining"`

	Recipes   []Recipe        `gorm:"foreignKey:UserID" json:"-"`
	Payments  []Payment       `gorm:"foreignKey:UserID" json:"-"`
	Favorites []UserFavorite  `gorm:"foreignKey:UserID" json:"-"`
	Ratings   []RecipeRating  `gorm:"foreignKey:UserID" json:"-"`
	Requests  []RecipeRequest `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

// HasActivePremium reports whether the premium flag is set and has not
// passed its expiry date.
func (u *User) HasActivePremium(now time.Time) bool {
	if !u.IsPremium {
		return false
	}
	if u.PremiumExpiry == nil {
		return false
	}
	return u.PremiumExpiry.After(now)
}
