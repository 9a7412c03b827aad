package models

import "time"

// Document is an uploaded file queued for printing. StorageKey locates the
// bytes in object storage. Printed is monotonic: once true it is never
// reset by normal operation.
type Document struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Filename   string    `json:"filename"`
	StorageKey string    `json:"fileUrl"`
	PageCount  int       `json:"pageCount"`
	Printed    bool      `json:"isPrinted"`
	CreatedAt  time.Time `json:"createdAt"`
}
