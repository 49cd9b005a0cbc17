package model

// ChatRequest is the body of POST /v1/mentors/:slug/chat.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	TopK    int    `json:"top_k"`
}

// ChatSource describes one retrieved chunk echoed back with the answer.
// Text is truncated to 200 characters for transport.
type ChatSource struct {
	ChunkID        string  `json:"chunk_id"`
	VideoID        string  `json:"video_id"`
	VideoTitle     string  `json:"video_title"`
	YoutubeVideoID string  `json:"youtube_video_id"`
	ChunkIndex     int     `json:"chunk_index"`
	StartSeconds   float64 `json:"start_seconds"`
	EndSeconds     float64 `json:"end_seconds"`
	Distance       float64 `json:"distance"`
	Text           string  `json:"text"`
}

// ChatResponse is the answer envelope for a chat turn.
type ChatResponse struct {
	Answer      string       `json:"answer"`
	MentorName  string       `json:"mentor_name"`
	ChunksFound int          `json:"chunks_found"`
	Retrieved   []ChatSource `json:"retrieved"`
}

// CreateMentorRequest is the body of POST /v1/mentors.
type CreateMentorRequest struct {
	Name            string `json:"name" binding:"required"`
	Slug            string `json:"slug" binding:"required"`
	PrimaryLanguage string `json:"primary_language"`
	Bio             string `json:"bio"`
}

// CreateVideoRequest is the body of POST /v1/videos.
type CreateVideoRequest struct {
	MentorSlug string `json:"mentor_slug" binding:"required"`
	URL        string `json:"url" binding:"required"`
	Title      string `json:"title"`
}

// VideoStatusResponse is the body of GET /v1/videos/:id/status.
type VideoStatusResponse struct {
	ID             string `json:"id"`
	YoutubeVideoID string `json:"youtube_video_id"`
	Title          string `json:"title"`
	Status         string `json:"status"`
	ErrorMessage   string `json:"error_message,omitempty"`
	ChunkCount     int    `json:"chunk_count"`
}

// StatsResponse is the body of GET /v1/stats.
type StatsResponse struct {
	Collection string `json:"collection"`
	RowCount   int64  `json:"row_count"`
	Mentors    int64  `json:"mentors"`
	Videos     int64  `json:"videos"`
}
