package dto

// RegisterRequest entrada para registro (password en texto, se hashea en el use case).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"required,email"`
	Fullname string `json:"fullname" validate:"omitempty,max=200"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Fullname string `json:"fullname,omitempty"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"access_token"`
	Type  string       `json:"token_type"`
	User  UserResponse `json:"user"`
}

// ItemRequest entrada para crear un item.
type ItemRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
