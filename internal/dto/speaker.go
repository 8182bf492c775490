package dto

type UploadSpeakerResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Speaker alice uploaded successfully!"`
}
