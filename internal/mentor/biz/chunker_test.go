package biz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/mentor-ai/internal/pkg/transcript"
)

func TestBuildWordTimeline(t *testing.T) {
	entries := []transcript.Entry{
		{Text: "a b c d", Start: 10, Duration: 2},
	}

	timeline := BuildWordTimeline(entries)
	require.Len(t, timeline, 4)

	assert.Equal(t, "a", timeline[0].Word)
	assert.InDelta(t, 10.0, timeline[0].Start, 1e-9)
	assert.InDelta(t, 10.5, timeline[0].End, 1e-9)
	assert.InDelta(t, 11.5, timeline[3].Start, 1e-9)
	assert.InDelta(t, 12.0, timeline[3].End, 1e-9)
}

func TestBuildWordTimelineSkipsEmptySegments(t *testing.T) {
	entries := []transcript.Entry{
		{Text: "", Start: 0, Duration: 1},
		{Text: "   ", Start: 1, Duration: 1},
		{Text: "only words", Start: 2, Duration: 1},
	}

	timeline := BuildWordTimeline(entries)
	require.Len(t, timeline, 2)
	assert.Equal(t, "only", timeline[0].Word)
	assert.Equal(t, "words", timeline[1].Word)
}

func TestBuildWordTimelineZeroDuration(t *testing.T) {
	timeline := BuildWordTimeline([]transcript.Entry{{Text: "x y", Start: 5, Duration: 0}})
	require.Len(t, timeline, 2)
	assert.InDelta(t, 5.0, timeline[0].Start, 1e-9)
	assert.InDelta(t, 5.0, timeline[1].End, 1e-9)
}

func TestNewTranscriptChunkerValidation(t *testing.T) {
	_, err := NewTranscriptChunker(0, 0)
	assert.Error(t, err)

	_, err = NewTranscriptChunker(100, 100)
	assert.Error(t, err)

	_, err = NewTranscriptChunker(100, -1)
	assert.Error(t, err)

	c, err := NewTranscriptChunker(100, 99)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

// makeEntries produces segments of ten one-second words each, covering
// wordCount words in total.
func makeEntries(wordCount int) []transcript.Entry {
	var entries []transcript.Entry
	for off := 0; off < wordCount; off += 10 {
		n := wordCount - off
		if n > 10 {
			n = 10
		}
		words := make([]string, n)
		for i := range words {
			words[i] = fmt.Sprintf("w%d", off+i)
		}
		entries = append(entries, transcript.Entry{
			Text:     strings.Join(words, " "),
			Start:    float64(off),
			Duration: float64(n),
		})
	}
	return entries
}

func TestChunkTranscriptEmpty(t *testing.T) {
	chunker := NewDefaultChunker()
	assert.Nil(t, chunker.ChunkTranscript(nil))
	assert.Nil(t, chunker.ChunkTranscript([]transcript.Entry{{Text: "  ", Start: 0, Duration: 1}}))
}

func TestChunkTranscriptSingleWindow(t *testing.T) {
	chunker := NewDefaultChunker()
	chunks := chunker.ChunkTranscript(makeEntries(100))

	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, 100, chunks[0].WordCount)
	assert.Equal(t, 0.0, chunks[0].StartSeconds)
	assert.Equal(t, 100.0, chunks[0].EndSeconds)
	assert.True(t, strings.HasPrefix(chunks[0].Text, "w0 w1 "))
	assert.True(t, strings.HasSuffix(chunks[0].Text, " w99"))
}

func TestChunkTranscriptExactWindowStops(t *testing.T) {
	// 350 words fill one window exactly; the advance lands inside the final
	// overlap stretch, so no second window is produced.
	chunker := NewDefaultChunker()
	chunks := chunker.ChunkTranscript(makeEntries(350))

	require.Len(t, chunks, 1)
	assert.Equal(t, 350, chunks[0].WordCount)
}

func TestChunkTranscriptOverlappingWindows(t *testing.T) {
	chunker := NewDefaultChunker()
	chunks := chunker.ChunkTranscript(makeEntries(1000))

	require.Len(t, chunks, 4)
	// Consecutive windows share the trailing 50 words.
	assert.Equal(t, 350, chunks[0].WordCount)
	assert.Equal(t, 0.0, chunks[0].StartSeconds)
	assert.Equal(t, 300.0, chunks[1].StartSeconds)
	assert.Equal(t, 600.0, chunks[2].StartSeconds)
	assert.Equal(t, 900.0, chunks[3].StartSeconds)
	assert.Equal(t, 100, chunks[3].WordCount)

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.ChunkIndex)
	}
}

func TestChunkTranscriptShortTailMergesIntoLastWindow(t *testing.T) {
	chunker := NewDefaultChunker()
	chunks := chunker.ChunkTranscript(makeEntries(420))

	require.Len(t, chunks, 2)
	assert.Equal(t, 350, chunks[0].WordCount)
	assert.Equal(t, 120, chunks[1].WordCount)
	assert.Equal(t, 300.0, chunks[1].StartSeconds)
	assert.Equal(t, 420.0, chunks[1].EndSeconds)
}

func TestChunkTranscriptDropsTrailingWindowShorterThanOverlap(t *testing.T) {
	// With 700 words the second window ends at word 650 and the next start
	// (600) already sits inside the final overlap stretch, so the last 50
	// words are never emitted.
	chunker := NewDefaultChunker()
	chunks := chunker.ChunkTranscript(makeEntries(700))

	require.Len(t, chunks, 2)
	assert.Equal(t, 350, chunks[0].WordCount)
	assert.Equal(t, 350, chunks[1].WordCount)
	assert.Equal(t, 650.0, chunks[1].EndSeconds)
	assert.NotContains(t, chunks[1].Text, "w650")
}

func TestChunkTranscriptRoundsTimestamps(t *testing.T) {
	chunker, err := NewTranscriptChunker(4, 1)
	require.NoError(t, err)

	// Three words across 1 second: word boundaries land on thirds, which
	// must come out rounded to two decimals.
	chunks := chunker.ChunkTranscript([]transcript.Entry{
		{Text: "one two three", Start: 0, Duration: 1},
	})
	require.Len(t, chunks, 1)
	assert.Equal(t, 0.0, chunks[0].StartSeconds)
	assert.Equal(t, 1.0, chunks[0].EndSeconds)

	chunks = chunker.ChunkTranscript([]transcript.Entry{
		{Text: "one two three", Start: 0.333, Duration: 1},
	})
	require.Len(t, chunks, 1)
	assert.Equal(t, 0.33, chunks[0].StartSeconds)
	assert.Equal(t, 1.33, chunks[0].EndSeconds)
}

func TestChunkTranscriptSmallWindows(t *testing.T) {
	chunker, err := NewTranscriptChunker(5, 2)
	require.NoError(t, err)

	// 12 words: [0:5), [3:8), [6:11), [9:12), then start=10 >= 12-2 stops.
	chunks := chunker.ChunkTranscript(makeEntries(12))
	require.Len(t, chunks, 4)
	assert.Equal(t, 5, chunks[0].WordCount)
	assert.Equal(t, 5, chunks[1].WordCount)
	assert.Equal(t, 5, chunks[2].WordCount)
	assert.Equal(t, 3, chunks[3].WordCount)
	assert.Equal(t, 3.0, chunks[1].StartSeconds)
	assert.Equal(t, 6.0, chunks[2].StartSeconds)
	assert.Equal(t, 9.0, chunks[3].StartSeconds)
}
