package model

import "time"

// File is the metadata record for one stored object.
// Key is the opaque object name in the bucket; it is generated server-side and
// never chosen by the caller for direct uploads. Filename is user-supplied and
// stored verbatim for display only. Records are created once and never updated.
type File struct {
	ID         int64     `json:"id"`
	Key        string    `json:"key"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	Mimetype   string    `json:"mimetype"`
	UploadedBy int64     `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}
