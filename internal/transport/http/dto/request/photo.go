package request

type FavoriteRequest struct {
	PhotoID   int64  `json:"photo_id" validate:"required,gt=0"`
	SessionID string `json:"session_id" validate:"max=255"`
}
