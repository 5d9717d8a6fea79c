package models

// Token ответ на успешный логин.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Identity определяет, кто отмечает фото избранным.
// Задан ровно один из UserID и SessionID.
type Identity struct {
	UserID    int64
	SessionID string
}

func (i Identity) IsUser() bool {
	return i.UserID != 0
}

func (i Identity) IsEmpty() bool {
	return i.UserID == 0 && i.SessionID == ""
}

// ResolveIdentity отдаёт приоритет пользователю перед анонимной сессией.
func ResolveIdentity(userID int64, sessionID string) Identity {
	if userID != 0 {
		return Identity{UserID: userID}
	}

	return Identity{SessionID: sessionID}
}

// Viewer посетитель публичной галереи.
type Viewer struct {
	UserID            int64
	SessionID         string
	UnlockedGalleries []int64
}

func (v Viewer) Identity() Identity {
	return ResolveIdentity(v.UserID, v.SessionID)
}

func (v Viewer) HasUnlocked(galleryID int64) bool {
	for _, id := range v.UnlockedGalleries {
		if id == galleryID {
			return true
		}
	}
	return false
}
