package request

type UpdateProfileRequest struct {
	Name  *string        `json:"name" validate:"omitempty,max=100"`
	Phone OptionalString `json:"phone"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,max=72"`
}
