package models

import "time"

type User struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"unique;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"` // bcrypt hash
	Cart      []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Wishlist  []Product  `gorm:"many2many:user_wishlist" json:"wishlist"`
	Orders    []Order    `gorm:"foreignKey:UserID" json:"orders"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem holds one product per user; quantity updates replace, not add.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_cart_user_product,unique" json:"-"`
	ProductID uint      `gorm:"index:idx_cart_user_product,unique" json:"productId"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}
