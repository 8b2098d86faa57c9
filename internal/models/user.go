package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:150;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	CPF          string `gorm:"size:14;uniqueIndex;not null" json:"cpf"`
	Sex          string `gorm:"size:20" json:"sex"`
	BirthDate    string `gorm:"size:10" json:"birth_date"`
	Phone        string `gorm:"size:20" json:"phone"`

	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Address struct {
	Street     string `gorm:"size:150" json:"street"`
	Number     string `gorm:"size:20" json:"number"`
	Complement string `gorm:"size:100" json:"complement"`
	District   string `gorm:"size:100" json:"district"`
	City       string `gorm:"size:100" json:"city"`
	State      string `gorm:"size:2" json:"state"`
	PostalCode string `gorm:"size:9" json:"postal_code"`
}
