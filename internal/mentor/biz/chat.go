package biz

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kart-io/logger"

	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/mentor/store"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
	"github.com/kart-io/mentor-ai/pkg/llm"
)

// MaxMessageLength bounds a single chat message in characters.
const MaxMessageLength = 8000

// maxSourceTextLength bounds chunk text echoed back in chat responses.
const maxSourceTextLength = 200

// noContextPlaceholder stands in for the context block when retrieval
// returns nothing; the persona prompt tells the model how to handle it.
const noContextPlaceholder = "(no relevant context found)"

// ChatUsecase runs one retrieval-augmented chat turn against a mentor
// persona.
type ChatUsecase struct {
	mentors   store.MentorStore
	embedder  *Embedder
	retriever *Retriever
	generator llm.ChatProvider
	cache     *AnswerCache
}

// NewChatUsecase wires the chat pipeline. cache may be nil to disable
// answer caching.
func NewChatUsecase(mentors store.MentorStore, embedder *Embedder, retriever *Retriever, generator llm.ChatProvider, cache *AnswerCache) *ChatUsecase {
	return &ChatUsecase{
		mentors:   mentors,
		embedder:  embedder,
		retriever: retriever,
		generator: generator,
		cache:     cache,
	}
}

// Chat validates the request, embeds the message, retrieves grounding
// chunks for the mentor, and generates an answer in the mentor's persona.
func (uc *ChatUsecase) Chat(ctx context.Context, mentorSlug string, req *model.ChatRequest) (*model.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.ErrValidation.WithMessage("message cannot be empty")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, apperrors.ErrValidation.WithMessage("message exceeds %d characters", MaxMessageLength)
	}

	topK := req.TopK
	if topK == 0 {
		topK = DefaultTopK
	}
	if topK < MinTopK || topK > MaxTopK {
		return nil, apperrors.ErrValidation.WithMessage("top_k must be between %d and %d", MinTopK, MaxTopK)
	}

	mentor, err := uc.mentors.GetBySlug(ctx, mentorSlug)
	if err != nil {
		return nil, err
	}

	cacheKey := uc.cache.Key(mentorSlug, message, topK)
	if cached, ok := uc.cache.Get(ctx, cacheKey); ok {
		logger.Debugw("chat answer served from cache", "mentor", mentorSlug)
		return cached, nil
	}

	persona := BuildPersonaPrompt(mentor.Name, mentor.Slug, mentor.Bio)

	embedding, err := uc.embedder.EmbedOne(ctx, message)
	if err != nil {
		return nil, err
	}

	chunks, err := uc.retriever.Retrieve(ctx, mentorSlug, embedding, topK)
	if err != nil {
		return nil, err
	}

	contextBlock := noContextPlaceholder
	if len(chunks) > 0 {
		contextBlock = buildContextBlock(chunks)
	}

	userPrompt := fmt.Sprintf("User message:\n%s\n\nContext snippets:\n%s\n", message, contextBlock)
	answer, err := uc.generator.Generate(ctx, userPrompt, persona)
	if err != nil {
		return nil, apperrors.ErrGenerationProvider.Wrap(err)
	}

	logger.Infow("chat turn completed",
		"mentor", mentorSlug, "top_k", topK, "chunks_found", len(chunks))

	resp := &model.ChatResponse{
		Answer:      answer,
		MentorName:  mentor.Name,
		ChunksFound: len(chunks),
		Retrieved:   formatRetrieved(chunks),
	}
	uc.cache.Set(ctx, cacheKey, resp)
	return resp, nil
}

// buildContextBlock renders retrieved chunks as numbered snippets, each
// followed by a provenance line the persona prompt can cite by number.
func buildContextBlock(chunks []*model.RetrievedChunk) string {
	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = fmt.Sprintf("[%d] %s\n(source: %s | yt: %s | idx: %d | %s-%ss)",
			i+1,
			chunk.Text,
			chunk.VideoTitle,
			chunk.YoutubeVideoID,
			chunk.ChunkIndex,
			formatSeconds(chunk.StartSeconds),
			formatSeconds(chunk.EndSeconds),
		)
	}
	return strings.Join(parts, "\n\n")
}

// formatRetrieved maps hits to the wire shape, truncating long chunk text.
func formatRetrieved(chunks []*model.RetrievedChunk) []model.ChatSource {
	sources := make([]model.ChatSource, len(chunks))
	for i, chunk := range chunks {
		sources[i] = model.ChatSource{
			ChunkID:        chunk.ChunkID,
			VideoID:        chunk.VideoID,
			VideoTitle:     chunk.VideoTitle,
			YoutubeVideoID: chunk.YoutubeVideoID,
			ChunkIndex:     chunk.ChunkIndex,
			StartSeconds:   chunk.StartSeconds,
			EndSeconds:     chunk.EndSeconds,
			Distance:       chunk.Distance,
			Text:           truncateText(chunk.Text, maxSourceTextLength),
		}
	}
	return sources
}

func truncateText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
