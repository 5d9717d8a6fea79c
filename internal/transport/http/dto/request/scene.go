package request

type CreateSceneRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	OrderIndex *int   `json:"order_index" validate:"omitempty,min=0"`
}

type UpdateSceneRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=255"`
	OrderIndex *int    `json:"order_index" validate:"omitempty,min=0"`
}
