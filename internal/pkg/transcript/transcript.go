// Package transcript fetches timed video transcripts from an external
// transcript API and normalizes them for the chunking pipeline.
package transcript

import (
	"context"
	"fmt"
	"time"

	"github.com/kart-io/mentor-ai/pkg/utils/httpclient"
)

// Entry is one timed caption segment of a transcript.
type Entry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Result is a normalized transcript fetch outcome.
type Result struct {
	Success      bool    `json:"success"`
	VideoID      string  `json:"video_id"`
	Language     string  `json:"language"`
	Entries      []Entry `json:"entries"`
	EntriesCount int     `json:"entries_count"`
	Error        string  `json:"error,omitempty"`
}

// Source fetches transcripts for videos.
type Source interface {
	// GetTranscript fetches the transcript of a video in the given language.
	GetTranscript(ctx context.Context, videoID, language string) (*Result, error)
}

// HTTPSource fetches transcripts from a transcript API over HTTP.
type HTTPSource struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
}

var _ Source = (*HTTPSource)(nil)

// NewHTTPSource creates a transcript source against the given API base URL.
func NewHTTPSource(baseURL, apiKey string, timeout time.Duration, maxRetries int) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  httpclient.NewClient(timeout, maxRetries),
	}
}

type fetchRequest struct {
	VideoID  string `json:"video_id"`
	Language string `json:"language"`
}

type fetchResponse struct {
	Transcript []Entry `json:"transcript"`
	Error      string  `json:"error"`
}

// GetTranscript fetches the transcript for videoID. Only English transcripts
// are supported; other languages fail without a network call.
func (s *HTTPSource) GetTranscript(ctx context.Context, videoID, language string) (*Result, error) {
	if language == "" {
		language = "en"
	}
	if language != "en" {
		return nil, fmt.Errorf("unsupported transcript language: %s", language)
	}

	var headers map[string]string
	if s.apiKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + s.apiKey}
	}

	var resp fetchResponse
	err := s.client.PostJSON(ctx, s.baseURL+"/transcript", headers,
		fetchRequest{VideoID: videoID, Language: language}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript for %s: %w", videoID, err)
	}
	if resp.Error != "" {
		return &Result{
			Success:  false,
			VideoID:  videoID,
			Language: language,
			Error:    resp.Error,
		}, nil
	}

	return &Result{
		Success:      true,
		VideoID:      videoID,
		Language:     language,
		Entries:      resp.Transcript,
		EntriesCount: len(resp.Transcript),
	}, nil
}
