package biz

import (
	"fmt"
	"math"
	"strings"

	"github.com/kart-io/mentor-ai/internal/pkg/transcript"
)

// Default chunking parameters, tuned for ~350-word retrieval units with a
// 50-word overlap so no sentence is stranded on a window boundary.
const (
	DefaultChunkSizeWords = 350
	DefaultOverlapWords   = 50
)

// Chunk is one sliding window of transcript text with timing metadata.
type Chunk struct {
	Text         string
	ChunkIndex   int
	StartSeconds float64
	EndSeconds   float64
	WordCount    int
}

// TranscriptChunker splits word timelines into overlapping windows.
type TranscriptChunker struct {
	chunkSize int
	overlap   int
}

// NewTranscriptChunker creates a chunker. Overlap must be non-negative and
// strictly smaller than the chunk size, otherwise the window advance could
// stall or move backwards.
func NewTranscriptChunker(chunkSizeWords, overlapWords int) (*TranscriptChunker, error) {
	if chunkSizeWords <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSizeWords)
	}
	if overlapWords < 0 || overlapWords >= chunkSizeWords {
		return nil, fmt.Errorf("overlap must be in [0, %d), got %d", chunkSizeWords, overlapWords)
	}
	return &TranscriptChunker{chunkSize: chunkSizeWords, overlap: overlapWords}, nil
}

// NewDefaultChunker creates a chunker with the default window parameters.
func NewDefaultChunker() *TranscriptChunker {
	c, _ := NewTranscriptChunker(DefaultChunkSizeWords, DefaultOverlapWords)
	return c
}

// ChunkTranscript splits a transcript into overlapping word windows. Window
// timestamps come from the first and last word of the window, rounded to two
// decimals. Iteration stops once the next window would start within the last
// overlap-sized stretch of the timeline, so a short trailing window is
// dropped rather than emitted.
func (c *TranscriptChunker) ChunkTranscript(entries []transcript.Entry) []Chunk {
	if len(entries) == 0 {
		return nil
	}
	words := BuildWordTimeline(entries)
	if len(words) == 0 {
		return nil
	}

	var chunks []Chunk
	chunkIndex := 0
	startIdx := 0

	for startIdx < len(words) {
		endIdx := startIdx + c.chunkSize
		if endIdx > len(words) {
			endIdx = len(words)
		}
		window := words[startIdx:endIdx]

		texts := make([]string, len(window))
		for i, w := range window {
			texts[i] = w.Word
		}

		chunks = append(chunks, Chunk{
			Text:         strings.Join(texts, " "),
			ChunkIndex:   chunkIndex,
			StartSeconds: round2(window[0].Start),
			EndSeconds:   round2(window[len(window)-1].End),
			WordCount:    len(window),
		})

		startIdx = endIdx - c.overlap
		chunkIndex++

		if startIdx >= len(words)-c.overlap {
			break
		}
	}

	return chunks
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func splitWords(s string) []string {
	return strings.Fields(s)
}
