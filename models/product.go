package models

import "time"

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	Brand         string    `json:"brand"`
	Image         string    `json:"image"`
	Tags          string    `json:"tags"` // comma-joined
	Price         float64   `gorm:"not null" json:"price"`
	OriginalPrice float64   `json:"originalPrice,omitempty"` // pre-discount price, for display
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	Quantity      int       `gorm:"not null;default:0" json:"quantity"` // inventory count
	Type          string    `json:"type"`                               // category tag
	RetailerID    *uint     `gorm:"index" json:"retailerId,omitempty"`  // nil for legacy catalog items
	Retailer      *Retailer `gorm:"foreignKey:RetailerID" json:"retailer,omitempty"`
	IsActive      bool      `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
