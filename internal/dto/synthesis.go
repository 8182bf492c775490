package dto

type GenerateTTSRequest struct {
	Text        string `json:"text" example:"Hello world"`
	SpeakerName string `json:"speaker_name" example:"alice"`
	Language    string `json:"language,omitempty" example:"en"`
}

type GenerateTTSResponse struct {
	Success bool   `json:"success" example:"true"`
	URL     string `json:"url" example:"https://audio.example.com/tts_outputs/alice.wav"`
}
