package faq

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/faqdesk/pkg/errors"
)

func TestService_SearchRecordsTrending(t *testing.T) {
	repo := newStubRepo(sampleData())
	store := newStubStore()
	svc := newServiceUnderTest(repo, store, nil)

	res, err := svc.Search(context.Background(), "  Оплата ")
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids(res.FAQ))
	require.Len(t, res.Categories, 2)
	require.Equal(t, map[string]int64{"оплата": 1}, store.counts)

	_, err = svc.Search(context.Background(), " ")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestService_FuzzySearch(t *testing.T) {
	store := newStubStore()
	svc := newServiceUnderTest(newStubRepo(sampleData()), store, nil)

	res, err := svc.FuzzySearch(context.Background(), "")
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Empty(t, store.counts)

	res, err = svc.FuzzySearch(context.Background(), "отменить заказ")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, int64(2), res.Matches[0].ID)
	require.Equal(t, int64(1), store.counts["отменить заказ"])
}

func TestService_LoadFailure(t *testing.T) {
	repo := newStubRepo(sampleData())
	repo.loadErr = errors.New("disk gone")
	svc := newServiceUnderTest(repo, nil, nil)

	_, err := svc.FuzzySearch(context.Background(), "заказ")
	require.True(t, apperrors.IsCode(err, "faq_error"))
}

func TestService_Lookups(t *testing.T) {
	svc := newServiceUnderTest(newStubRepo(sampleData()), nil, nil)
	ctx := context.Background()

	entry, err := svc.ByID(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "Как отменить заказ", entry.Question)

	_, err = svc.ByID(ctx, 42)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	byCat, err := svc.ByCategory(ctx, "billing")
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids(byCat))

	_, err = svc.ByCategory(ctx, "missing")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	byKw, err := svc.ByKeyword(ctx, "ПЛАТ")
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids(byKw))

	recent, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1}, ids(recent))

	popular, err := svc.Popular(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{2}, ids(popular))
}

func TestService_Stats(t *testing.T) {
	data := sampleData()
	data.FAQ[1].Keywords = []string{"отмена", "оплата"}
	svc := newServiceUnderTest(newStubRepo(data), nil, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalQuestions)
	require.Equal(t, 2, stats.CategoriesCount)
	require.Equal(t, map[string]int{"billing": 1, "orders": 1}, stats.QuestionsByCategory)
	require.Equal(t, []string{"оплата", "платеж", "отмена"}, stats.PopularKeywords)
	require.Len(t, stats.RecentAdditions, 2)
	require.Len(t, stats.PopularQuestions, 2)
}

func TestService_CreateUpdateDelete(t *testing.T) {
	repo := newStubRepo(sampleData())
	archiver := &stubArchiver{}
	svc := newServiceUnderTest(repo, nil, archiver)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Question: " Есть ли пробный период? ",
		Answer:   "Да, 7 дней",
		Keywords: []string{"пробный", " ", "trial"},
		Category: "billing",
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), created.ID)
	require.Equal(t, "Есть ли пробный период?", created.Question)
	require.Equal(t, []string{"пробный", "trial"}, created.Keywords)
	require.Equal(t, 3, *created.Priority)
	require.Equal(t, "2026-01-02", created.CreatedAt)
	require.Len(t, repo.data.FAQ, 3)
	require.Equal(t, 1, archiver.calls)

	newAnswer := "Да, 14 дней"
	updated, err := svc.Update(ctx, created.ID, UpdateRequest{Answer: &newAnswer, Priority: intPtr(2)})
	require.NoError(t, err)
	require.Equal(t, newAnswer, updated.Answer)
	require.Equal(t, "Есть ли пробный период?", updated.Question)
	require.Equal(t, 2, *updated.Priority)

	require.NoError(t, svc.Delete(ctx, 1))
	require.Equal(t, []int64{2, 3}, ids(repo.data.FAQ))
	require.Equal(t, 3, archiver.calls)

	err = svc.Delete(ctx, 1)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestService_CreateValidation(t *testing.T) {
	repo := newStubRepo(sampleData())
	svc := newServiceUnderTest(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Question: "q", Answer: " ", Category: "billing"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Create(ctx, CreateRequest{Question: "q", Answer: "a", Category: "unknown"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	badCategory := "unknown"
	_, err = svc.Update(ctx, 1, UpdateRequest{Category: &badCategory})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Zero(t, repo.saves)
}

func TestService_ArchiveFailureIsNotFatal(t *testing.T) {
	repo := newStubRepo(sampleData())
	svc := newServiceUnderTest(repo, nil, &stubArchiver{err: errors.New("bucket offline")})

	_, err := svc.Create(context.Background(), CreateRequest{Question: "q", Answer: "a", Category: "orders", Priority: intPtr(9)})
	require.NoError(t, err)
	require.Equal(t, 1, repo.saves)
}

func TestService_Trending(t *testing.T) {
	store := newStubStore()
	svc := newServiceUnderTest(newStubRepo(sampleData()), store, nil)

	_, err := svc.Trending(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 10, store.lastLimit)

	store.topErr = errors.New("valkey down")
	_, err = svc.Trending(context.Background(), 3)
	require.True(t, apperrors.IsCode(err, "faq_error"))
}

func newServiceUnderTest(repo Repository, store Store, archiver Archiver) *service {
	svc := NewService(Config{}, repo, store, archiver, newTestLogger()).(*service)
	svc.today = func() string { return "2026-01-02" }
	return svc
}

func sampleData() Data {
	entries := sampleEntries()
	entries[0].CreatedAt = "2024-01-01"
	entries[1].CreatedAt = "2024-03-01"
	return Data{
		FAQ:        entries,
		Categories: Categories{"billing": "Оплата", "orders": "Заказы"},
	}
}

type stubRepo struct {
	mu      sync.Mutex
	data    Data
	loadErr error
	saves   int
}

func newStubRepo(data Data) *stubRepo {
	return &stubRepo{data: data}
}

func (r *stubRepo) Load(context.Context) (Data, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return Data{}, r.loadErr
	}
	return r.data.Clone(), nil
}

func (r *stubRepo) Save(_ context.Context, data Data) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data.Clone()
	r.saves++
	return nil
}

type stubStore struct {
	counts    map[string]int64
	lastLimit int
	topErr    error
}

func newStubStore() *stubStore {
	return &stubStore{counts: make(map[string]int64)}
}

func (s *stubStore) IncrementQuery(_ context.Context, canonical, _ string) error {
	s.counts[canonical]++
	return nil
}

func (s *stubStore) TopQueries(_ context.Context, limit int) ([]TrendingQuery, error) {
	s.lastLimit = limit
	if s.topErr != nil {
		return nil, s.topErr
	}
	return []TrendingQuery{}, nil
}

type stubArchiver struct {
	calls int
	err   error
}

func (a *stubArchiver) ArchiveSnapshot(context.Context, Data) error {
	a.calls++
	return a.err
}
