package storage

import "errors"

var (
	ErrUserExists       = errors.New("user already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrGalleryNotFound  = errors.New("gallery not found")
	ErrSceneNotFound    = errors.New("scene not found")
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrMessageNotFound  = errors.New("contact message not found")
)

var (
	ErrObjectNotFound  = errors.New("object not found")
	ErrInvalidFileType = errors.New("invalid file type")
)
