package model

type CreatePostDTO struct {
	Description string        `json:"description"`
	Files       []*FileUpload `json:"files,omitempty"`
}
