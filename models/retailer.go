package models

import "time"

type Retailer struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Email           string          `gorm:"unique;not null" json:"email"`
	Password        string          `gorm:"not null" json:"-"` // bcrypt hash
	BusinessName    string          `gorm:"not null" json:"businessName"`
	BusinessAddress BusinessAddress `gorm:"embedded;embeddedPrefix:business_" json:"businessAddress"`
	Phone           string          `json:"phone"`
	Logo            string          `gorm:"default:'default-retailer-logo.png'" json:"logo"`
	IsVerified      bool            `gorm:"default:false" json:"isVerified"`
	Products        []Product       `gorm:"foreignKey:RetailerID" json:"products,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// BusinessAddress model embedded in Retailer
type BusinessAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}
