package biz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
)

func newChatUsecase(mentors *fakeMentorStore, index *fakeIndex, generator *fakeChatProvider) *ChatUsecase {
	return NewChatUsecase(
		mentors,
		NewEmbedder(&fakeEmbedProvider{}),
		NewRetriever(index),
		generator,
		nil,
	)
}

func tonyMentor() *model.Mentor {
	return &model.Mentor{ID: model.NewID(), Name: "Tony Robbins", Slug: "tony-robbins"}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	uc := newChatUsecase(newFakeMentorStore(tonyMentor()), newFakeIndex(), &fakeChatProvider{})

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := uc.Chat(context.Background(), "tony-robbins", &model.ChatRequest{Message: message})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	}
}

func TestChatRejectsOversizedMessage(t *testing.T) {
	uc := newChatUsecase(newFakeMentorStore(tonyMentor()), newFakeIndex(), &fakeChatProvider{})

	_, err := uc.Chat(context.Background(), "tony-robbins", &model.ChatRequest{
		Message: strings.Repeat("a", MaxMessageLength+1),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	// Exactly at the limit is fine.
	_, err = uc.Chat(context.Background(), "tony-robbins", &model.ChatRequest{
		Message: strings.Repeat("a", MaxMessageLength),
	})
	require.NoError(t, err)
}

func TestChatRejectsTopKOutOfRange(t *testing.T) {
	uc := newChatUsecase(newFakeMentorStore(tonyMentor()), newFakeIndex(), &fakeChatProvider{})

	for _, topK := range []int{-1, 13} {
		_, err := uc.Chat(context.Background(), "tony-robbins", &model.ChatRequest{Message: "hi", TopK: topK})
		require.Error(t, err, "top_k=%d", topK)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	}
}

func TestChatDefaultsTopK(t *testing.T) {
	index := newFakeIndex()
	uc := newChatUsecase(newFakeMentorStore(tonyMentor()), index, &fakeChatProvider{answer: "ok"})

	_, err := uc.Chat(context.Background(), "tony-robbins", &model.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, index.lastK)
}

func TestChatUnknownMentor(t *testing.T) {
	uc := newChatUsecase(newFakeMentorStore(), newFakeIndex(), &fakeChatProvider{})

	_, err := uc.Chat(context.Background(), "nobody", &model.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestChatBuildsNumberedContextBlock(t *testing.T) {
	index := newFakeIndex()
	index.searchResult = []*model.RetrievedChunk{
		{
			ChunkID:        "c1",
			VideoID:        "v1",
			VideoTitle:     "Morning Routines",
			YoutubeVideoID: "dQw4w9WgXcQ",
			ChunkIndex:     0,
			Text:           "Wake up early and move your body.",
			StartSeconds:   0,
			EndSeconds:     90,
			Distance:       0.12,
		},
		{
			ChunkID:        "c2",
			VideoID:        "v2",
			VideoTitle:     "Peak State",
			YoutubeVideoID: "abc123def45",
			ChunkIndex:     3,
			Text:           "Your state drives your decisions.",
			StartSeconds:   12.5,
			EndSeconds:     90.25,
			Distance:       0.31,
		},
	}
	generator := &fakeChatProvider{answer: "Do the thing."}
	uc := newChatUsecase(newFakeMentorStore(tonyMentor()), index, generator)

	resp, err := uc.Chat(context.Background(), "tony-robbins", &model.ChatRequest{Message: "How do I start my day?", TopK: 2})
	require.NoError(t, err)

	wantContext := "[1] Wake up early and move your body.\n" +
		"(source: Morning Routines | yt: dQw4w9WgXcQ | idx: 0 | 0-90s)\n\n" +
		"[2] Your state drives your decisions.\n" +
		"(source: Peak State | yt: abc123def45 | idx: 3 | 12.5-90.25s)"
	wantPrompt := "User message:\nHow do I start my day?\n\nContext snippets:\n" + wantContext + "\n"
	assert.Equal(t, wantPrompt, generator.lastPrompt)
	assert.Contains(t, generator.lastSystem, "You are Tony Robbins (MentorAI persona).")

	assert.Equal(t, "Do the thing.", resp.Answer)
	assert.Equal(t, "Tony Robbins", resp.MentorName)
	assert.Equal(t, 2, resp.ChunksFound)
	require.Len(t, resp.Retrieved, 2)
	assert.Equal(t, "c1", resp.Retrieved[0].ChunkID)
	assert.Equal(t, "v1", resp.Retrieved[0].VideoID)
	assert.Equal(t, "Morning Routines", resp.Retrieved[0].VideoTitle)
	assert.Equal(t, 0.12, resp.Retrieved[0].Distance)
	assert.Equal(t, "c2", resp.Retrieved[1].ChunkID)
	assert.Equal(t, "v2", resp.Retrieved[1].VideoID)
}

func TestChatWithoutContextUsesPlaceholder(t *testing.T) {
	generator := &fakeChatProvider{answer: "General advice."}
	uc := newChatUsecase(newFakeMentorStore(tonyMentor()), newFakeIndex(), generator)

	resp, err := uc.Chat(context.Background(), "tony-robbins", &model.ChatRequest{Message: "hi"})
	require.NoError(t, err)

	assert.Contains(t, generator.lastPrompt, "Context snippets:\n(no relevant context found)\n")
	assert.Equal(t, 0, resp.ChunksFound)
	assert.Empty(t, resp.Retrieved)
}

func TestChatTruncatesLongSourceText(t *testing.T) {
	longText := strings.Repeat("x", 250)
	index := newFakeIndex()
	index.searchResult = []*model.RetrievedChunk{
		{VideoTitle: "Long One", YoutubeVideoID: "abc123def45", Text: longText},
	}
	generator := &fakeChatProvider{answer: "ok"}
	uc := newChatUsecase(newFakeMentorStore(tonyMentor()), index, generator)

	resp, err := uc.Chat(context.Background(), "tony-robbins", &model.ChatRequest{Message: "hi", TopK: 1})
	require.NoError(t, err)

	require.Len(t, resp.Retrieved, 1)
	assert.Equal(t, strings.Repeat("x", 200)+"...", resp.Retrieved[0].Text)
	// The prompt keeps the full text.
	assert.Contains(t, generator.lastPrompt, longText)
}

func TestChatWrapsGenerationError(t *testing.T) {
	generator := &fakeChatProvider{err: errors.New("model overloaded")}
	uc := newChatUsecase(newFakeMentorStore(tonyMentor()), newFakeIndex(), generator)

	_, err := uc.Chat(context.Background(), "tony-robbins", &model.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGenerationProvider))
}

func TestChatPropagatesEmbeddingError(t *testing.T) {
	uc := NewChatUsecase(
		newFakeMentorStore(tonyMentor()),
		NewEmbedder(&fakeEmbedProvider{err: errors.New("down")}),
		NewRetriever(newFakeIndex()),
		&fakeChatProvider{},
		nil,
	)

	_, err := uc.Chat(context.Background(), "tony-robbins", &model.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmbeddingProvider))
}
