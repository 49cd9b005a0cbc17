package biz

import (
	"github.com/kart-io/mentor-ai/internal/pkg/transcript"
)

// WordTiming is one word of a transcript with interpolated start and end
// times.
type WordTiming struct {
	Word  string
	Start float64
	End   float64
}

// BuildWordTimeline flattens timed transcript segments into a per-word
// timeline. Each word in a segment gets an equal share of the segment
// duration, laid out sequentially from the segment start. Segments without
// any words are skipped; malformed input never produces an error.
func BuildWordTimeline(entries []transcript.Entry) []WordTiming {
	var timeline []WordTiming

	for _, segment := range entries {
		words := splitWords(segment.Text)
		if len(words) == 0 {
			continue
		}

		avgWordDuration := segment.Duration / float64(len(words))
		for i, word := range words {
			start := segment.Start + float64(i)*avgWordDuration
			timeline = append(timeline, WordTiming{
				Word:  word,
				Start: start,
				End:   start + avgWordDuration,
			})
		}
	}

	return timeline
}
