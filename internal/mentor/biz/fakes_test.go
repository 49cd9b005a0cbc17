package biz

import (
	"context"
	"fmt"
	"sync"

	"github.com/kart-io/mentor-ai/internal/mentor/store"
	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
	"github.com/kart-io/mentor-ai/internal/pkg/transcript"
	"github.com/kart-io/mentor-ai/pkg/llm"
)

type fakeMentorStore struct {
	mentors map[string]*model.Mentor
}

var _ store.MentorStore = (*fakeMentorStore)(nil)

func newFakeMentorStore(mentors ...*model.Mentor) *fakeMentorStore {
	s := &fakeMentorStore{mentors: make(map[string]*model.Mentor)}
	for _, m := range mentors {
		s.mentors[m.Slug] = m
	}
	return s
}

func (s *fakeMentorStore) Create(_ context.Context, mentor *model.Mentor) error {
	s.mentors[mentor.Slug] = mentor
	return nil
}

func (s *fakeMentorStore) Get(_ context.Context, id string) (*model.Mentor, error) {
	for _, m := range s.mentors {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, apperrors.ErrNotFound.WithMessage("mentor %q not found", id)
}

func (s *fakeMentorStore) GetBySlug(_ context.Context, slug string) (*model.Mentor, error) {
	if m, ok := s.mentors[slug]; ok {
		return m, nil
	}
	return nil, apperrors.ErrNotFound.WithMessage("mentor %q not found", slug)
}

func (s *fakeMentorStore) List(_ context.Context) (*model.MentorList, error) {
	list := &model.MentorList{}
	for _, m := range s.mentors {
		list.Items = append(list.Items, m)
	}
	list.TotalCount = int64(len(list.Items))
	return list, nil
}

func (s *fakeMentorStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.mentors)), nil
}

type fakeVideoStore struct {
	mu       sync.Mutex
	videos   map[string]*model.VideoContent
	statuses map[string][]string
}

var _ store.VideoStore = (*fakeVideoStore)(nil)

func newFakeVideoStore(videos ...*model.VideoContent) *fakeVideoStore {
	s := &fakeVideoStore{
		videos:   make(map[string]*model.VideoContent),
		statuses: make(map[string][]string),
	}
	for _, v := range videos {
		if v.Status == "" {
			v.Status = model.VideoStatusNew
		}
		s.videos[v.ID] = v
	}
	return s
}

func (s *fakeVideoStore) statusHistory(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.statuses[id]...)
}

func (s *fakeVideoStore) Create(_ context.Context, video *model.VideoContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos[video.ID] = video
	return nil
}

func (s *fakeVideoStore) Get(_ context.Context, id string) (*model.VideoContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.videos[id]; ok {
		copied := *v
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound.WithMessage("video %q not found", id)
}

func (s *fakeVideoStore) UpdateStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return apperrors.ErrNotFound.WithMessage("video %q not found", id)
	}
	v.Status = status
	s.statuses[id] = append(s.statuses[id], status)
	return nil
}

func (s *fakeVideoStore) TryMarkQueued(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return apperrors.ErrNotFound.WithMessage("video %q not found", id)
	}
	for _, inflight := range model.InFlightStatuses {
		if v.Status == inflight {
			return apperrors.ErrConflict.WithMessage("video %q is already being processed", id)
		}
	}
	v.Status = model.VideoStatusQueued
	s.statuses[id] = append(s.statuses[id], model.VideoStatusQueued)
	return nil
}

func (s *fakeVideoStore) MarkFailed(_ context.Context, id, errorMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.videos[id]; ok {
		v.Status = model.VideoStatusFailed
		v.ErrorMessage = errorMessage
		s.statuses[id] = append(s.statuses[id], model.VideoStatusFailed)
	}
	return nil
}

func (s *fakeVideoStore) SetReady(_ context.Context, id string, chunkCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.videos[id]; ok {
		v.Status = model.VideoStatusReady
		v.ChunkCount = chunkCount
		v.ErrorMessage = ""
		s.statuses[id] = append(s.statuses[id], model.VideoStatusReady)
	}
	return nil
}

func (s *fakeVideoStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.videos)), nil
}

type fakeChunkStore struct {
	mu     sync.Mutex
	stored map[string][]*model.ContentChunk
	err    error
}

var _ store.ChunkStore = (*fakeChunkStore)(nil)

func newFakeChunkStore() *fakeChunkStore {
	return &fakeChunkStore{stored: make(map[string][]*model.ContentChunk)}
}

func (s *fakeChunkStore) ReplaceChunks(_ context.Context, videoID string, chunks []*model.ContentChunk) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored[videoID] = chunks
	return nil
}

func (s *fakeChunkStore) ListByVideo(_ context.Context, videoID string) ([]*model.ContentChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stored[videoID], nil
}

func (s *fakeChunkStore) CountByVideo(_ context.Context, videoID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.stored[videoID])), nil
}

type fakeIndex struct {
	mu           sync.Mutex
	replaced     map[string][][]float32
	searchResult []*model.RetrievedChunk
	searchErr    error
	lastSlug     string
	lastK        int
}

var _ store.VectorIndex = (*fakeIndex)(nil)

func newFakeIndex() *fakeIndex {
	return &fakeIndex{replaced: make(map[string][][]float32)}
}

func (s *fakeIndex) EnsureCollection(_ context.Context, _ int) error { return nil }

func (s *fakeIndex) ReplaceVideo(_ context.Context, _ string, video *model.VideoContent, _ []*model.ContentChunk, embeddings [][]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced[video.ID] = embeddings
	return nil
}

func (s *fakeIndex) SearchByMentor(_ context.Context, mentorSlug string, _ []float32, k int) ([]*model.RetrievedChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSlug = mentorSlug
	s.lastK = k
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if len(s.searchResult) > k {
		return s.searchResult[:k], nil
	}
	return s.searchResult, nil
}

func (s *fakeIndex) RowCount(_ context.Context) (int64, error) { return 0, nil }
func (s *fakeIndex) Close(_ context.Context) error             { return nil }

type fakeSource struct {
	mu     sync.Mutex
	result *transcript.Result
	err    error
	calls  int
}

var _ transcript.Source = (*fakeSource)(nil)

func (s *fakeSource) GetTranscript(_ context.Context, videoID, _ string) (*transcript.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &transcript.Result{
		Success:      true,
		VideoID:      videoID,
		Language:     "en",
		Entries:      []transcript.Entry{{Text: "hello there world", Start: 0, Duration: 3}},
		EntriesCount: 1,
	}, nil
}

var _ llm.EmbeddingProvider = (*fakeEmbedProvider)(nil)

type fakeEmbedProvider struct {
	mu        sync.Mutex
	err       error
	failFirst int
	dim       int
	calls     int
}

func (p *fakeEmbedProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.failFirst > 0 && p.calls <= p.failFirst {
		return nil, fmt.Errorf("temporary failure %d", p.calls)
	}
	if p.err != nil {
		return nil, p.err
	}
	dim := p.dim
	if dim == 0 {
		dim = 3
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		vec := make([]float32, dim)
		vec[0] = float32(i + 1)
		out[i] = vec
	}
	return out, nil
}

func (p *fakeEmbedProvider) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	out, err := p.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (p *fakeEmbedProvider) Name() string { return "fake-embed" }

type fakeChatProvider struct {
	answer     string
	err        error
	lastPrompt string
	lastSystem string
}

var _ llm.ChatProvider = (*fakeChatProvider)(nil)

func (p *fakeChatProvider) Chat(_ context.Context, _ []llm.Message) (string, error) {
	return "", fmt.Errorf("not used")
}

func (p *fakeChatProvider) Generate(_ context.Context, prompt, systemPrompt string) (string, error) {
	p.lastPrompt = prompt
	p.lastSystem = systemPrompt
	if p.err != nil {
		return "", p.err
	}
	return p.answer, nil
}

func (p *fakeChatProvider) Name() string { return "fake-chat" }
