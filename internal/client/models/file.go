package models

import (
	"encoding/json"
	"time"
)

// FileRecord is one entry of the user's library.
type FileRecord struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	UploadDate   time.Time `json:"uploadDate"`
}

// UnmarshalJSON accepts the identifier as either "_id" (library listings) or
// "id" (share payloads).
func (f *FileRecord) UnmarshalJSON(b []byte) error {
	type plain FileRecord
	var aux struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*f = FileRecord(aux.plain)
	if f.ID == "" {
		f.ID = aux.MongoID
	}
	return nil
}

// PendingFile is a local file selected for upload but not yet submitted.
type PendingFile struct {
	Name string
	Path string
	Size int64
}
