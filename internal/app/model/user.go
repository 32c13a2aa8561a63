package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string // rol del usuario

const (
	RoleUser  UserRole = "user"  // cliente
	RoleAdmin UserRole = "admin" // administrador del panel
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                               // ID de usuario
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`                  // email
	PasswordHash string         `gorm:"not null" json:"-"`                                  // hash de contraseña
	Name         string         `gorm:"not null" json:"name"`                               // nombre completo
	RUT          string         `gorm:"column:rut;size:12;uniqueIndex;not null" json:"rut"` // RUT en forma canónica (12.345.678-5)
	Phone        string         `json:"phone"`                                              // teléfono (+56 9 ...)
	Address      string         `json:"address"`                                            // dirección
	Comuna       string         `gorm:"size:80" json:"comuna"`                              // comuna
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`        // rol
	CreatedAt    time.Time      `json:"created_at"`                                         // creado
	UpdatedAt    time.Time      `json:"updated_at"`                                         // actualizado
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                     // borrado lógico
}

func (User) TableName() string {
	return "users"
}
