package request

type CreateGalleryRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	ShootingDate *Date   `json:"shooting_date"`
	Password     *string `json:"password" validate:"omitempty,max=72"`
	// Флаги принимаются для совместимости, галерея всё равно публичная,
	// а защита включается наличием пароля.
	IsPublic            *bool `json:"is_public"`
	IsPasswordProtected *bool `json:"is_password_protected"`
}

type UpdateGalleryRequest struct {
	Name                *string        `json:"name" validate:"omitempty,max=255"`
	ShootingDate        *Date          `json:"shooting_date"`
	IsPublic            *bool          `json:"is_public"`
	IsPasswordProtected *bool          `json:"is_password_protected"`
	Password            OptionalString `json:"password"`
}

// CheckPasswordRequest пустой пароль допустим и просто не совпадёт.
type CheckPasswordRequest struct {
	Password string `json:"password"`
}
