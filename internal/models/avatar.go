package models

// Avatar is a selectable profile image shipped with the frontend.
type Avatar struct {
	ID       uint   `gorm:"primaryKey"`
	FileName string `gorm:"uniqueIndex;not null"`
}
