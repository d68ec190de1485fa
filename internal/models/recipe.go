package models

import (
	"time"

	"github.com/lib/pq"
)

type Recipe struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"not null" json:"title"`
	Ingredients     pq.StringArray `gorm:"type:text[];not null" json:"ingredients"`
	Steps           pq.StringArray `gorm:"type:text[];not null" json:"steps"`
	Image           string         `json:"image,omitempty"`
	PreparationTime int            `gorm:"not null;index" json:"preparationTime"` // minutes
	AuthorID        uint           `gorm:"not null;index" json:"authorId"`
	Author          User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Ratings         []Rating       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"ratings"`
	Comments        []Comment      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
	AverageRating   float64        `gorm:"not null;default:0;index" json:"averageRating"` // mean of Ratings[].Value, 0 when empty
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}
