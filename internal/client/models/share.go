package models

import "time"

// ShareLink is the backend's answer to a link request. Either field may be
// empty; ShareLink wins when both are set.
type ShareLink struct {
	ShareToken string     `json:"shareToken"`
	ShareLink  string     `json:"shareLink"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// SharedFile is what an anonymous token holder learns about the shared file.
type SharedFile struct {
	File      FileRecord `json:"file"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
