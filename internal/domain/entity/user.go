package entity

import "time"

// User productor de mercancías. Dueño de items, archivos subidos y filas de eventos.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	Fullname     string // opcional
	CreatedAt    time.Time
}

// Item recurso CRUD trivial asociado al usuario.
type Item struct {
	ID     string
	Name   string
	UserID string
}

// UserFile registro de un archivo subido: ruta en disco y dueño.
// Se crea al subir y el dispatcher de ingestión lo consulta una sola vez.
type UserFile struct {
	ID        string
	Filename  string
	Path      string
	UserID    string
	CreatedAt time.Time
}
