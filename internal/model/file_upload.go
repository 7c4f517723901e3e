package model

// FileUpload is one file taken from the caller's draft, held in memory
// until the upload pipeline has written it to the blob store.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}
