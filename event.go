package fleetloader

import (
	"fmt"
)

// Event identifies a source workbook, such as a Cloud Storage object
// finalize event.
type Event struct {
	Name   string `json:"name"`
	Bucket string `json:"bucket"`
}

// FullPath returns full path of storage object beginning with gs://, or
// just the name when there is no bucket.
func (e *Event) FullPath() string {
	if e.Bucket == "" {
		return e.Name
	}
	return fmt.Sprintf("gs://%s/%s", e.Bucket, e.Name)
}
