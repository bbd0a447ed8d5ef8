package domain

import "time"

// Agent es el usuario autenticado de la plataforma (agente inmobiliario).
type Agent struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
