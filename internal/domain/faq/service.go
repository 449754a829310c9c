package faq

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/yanqian/faqdesk/pkg/errors"
	"github.com/yanqian/faqdesk/pkg/metrics"
	"github.com/yanqian/faqdesk/pkg/util"
)

const (
	popularKeywordLimit = 10
	statsListLimit      = 5
)

// Service exposes FAQ browsing, search and administration.
type Service interface {
	All(ctx context.Context) (Data, error)
	Categories(ctx context.Context) (Categories, error)
	ByCategory(ctx context.Context, category string) ([]Entry, error)
	ByID(ctx context.Context, id int64) (Entry, error)
	Search(ctx context.Context, query string) (SearchResult, error)
	FuzzySearch(ctx context.Context, query string) (FuzzyResult, error)
	Popular(ctx context.Context, limit int) ([]Entry, error)
	Recent(ctx context.Context, limit int) ([]Entry, error)
	ByKeyword(ctx context.Context, keyword string) ([]Entry, error)
	Stats(ctx context.Context) (Stats, error)
	Trending(ctx context.Context, limit int) ([]TrendingQuery, error)

	Create(ctx context.Context, req CreateRequest) (Entry, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (Entry, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	cfg      Config
	repo     Repository
	store    Store
	archiver Archiver
	scorer   *Scorer
	logger   *slog.Logger
	today    func() string

	// writeMu serializes load-modify-save cycles.
	writeMu sync.Mutex
}

// NewService wires up the FAQ domain. store and archiver may be nil.
func NewService(cfg Config, repo Repository, store Store, archiver Archiver, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg.withDefaults(),
		repo:     repo,
		store:    store,
		archiver: archiver,
		scorer:   NewScorer(logger),
		logger:   logger.With("component", "faq.service"),
		today:    util.Today,
	}
}

func (s *service) load(ctx context.Context) (Data, error) {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return Data{}, apperrors.Wrap("faq_error", "failed to load faq data", err)
	}
	return data, nil
}

func (s *service) All(ctx context.Context) (Data, error) {
	return s.load(ctx)
}

func (s *service) Categories(ctx context.Context) (Categories, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if data.Categories == nil {
		return Categories{}, nil
	}
	return data.Categories, nil
}

func (s *service) ByCategory(ctx context.Context, category string) ([]Entry, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0)
	for _, e := range data.FAQ {
		if e.Category == category {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "category not found", nil)
	}
	return out, nil
}

func (s *service) ByID(ctx context.Context, id int64) (Entry, error) {
	data, err := s.load(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range data.FAQ {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, apperrors.Wrap(apperrors.CodeNotFound, "question not found", nil)
}

func (s *service) Search(ctx context.Context, query string) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		metrics.IncSearch("exact", "rejected")
		return SearchResult{}, apperrors.Wrap(apperrors.CodeInvalidInput, "search query cannot be empty", nil)
	}
	data, err := s.load(ctx)
	if err != nil {
		return SearchResult{}, err
	}

	results := s.scorer.Search(query, data.FAQ)
	metrics.IncSearch("exact", outcome(len(results)))
	s.recordQuery(ctx, query)

	categories := data.Categories
	if categories == nil {
		categories = Categories{}
	}
	return SearchResult{FAQ: results, Categories: categories}, nil
}

func (s *service) FuzzySearch(ctx context.Context, query string) (FuzzyResult, error) {
	if strings.TrimSpace(query) == "" {
		metrics.IncSearch("fuzzy", "rejected")
		return s.scorer.FuzzySearch(query, nil, nil), nil
	}
	data, err := s.load(ctx)
	if err != nil {
		return FuzzyResult{}, err
	}

	result := s.scorer.FuzzySearch(query, data.FAQ, func(limit int) []Entry {
		return PopularEntries(data.FAQ, limit)
	})
	metrics.IncSearch("fuzzy", outcome(result.ResultsCount))
	s.recordQuery(ctx, strings.TrimSpace(query))
	return result, nil
}

func (s *service) Popular(ctx context.Context, limit int) ([]Entry, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.PopularLimit
	}
	return PopularEntries(data.FAQ, limit), nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.RecentLimit
	}
	return recentEntries(data.FAQ, limit), nil
}

func (s *service) ByKeyword(ctx context.Context, keyword string) ([]Entry, error) {
	needle := foldCase(strings.TrimSpace(keyword))
	if needle == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "keyword cannot be empty", nil)
	}
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0)
	for _, e := range data.FAQ {
		for _, kw := range e.Keywords {
			if strings.Contains(foldCase(kw), needle) {
				out = append(out, e)
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "no questions for keyword", nil)
	}
	return out, nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	data, err := s.load(ctx)
	if err != nil {
		return Stats{}, err
	}
	byCategory := make(map[string]int, len(data.Categories))
	for _, e := range data.FAQ {
		byCategory[e.Category]++
	}
	return Stats{
		TotalQuestions:      len(data.FAQ),
		QuestionsByCategory: byCategory,
		CategoriesCount:     len(data.Categories),
		PopularKeywords:     popularKeywords(data.FAQ, popularKeywordLimit),
		RecentAdditions:     recentEntries(data.FAQ, statsListLimit),
		PopularQuestions:    PopularEntries(data.FAQ, statsListLimit),
	}, nil
}

func (s *service) Trending(ctx context.Context, limit int) ([]TrendingQuery, error) {
	if s.store == nil {
		return []TrendingQuery{}, nil
	}
	if limit <= 0 {
		limit = s.cfg.TrendingLimit
	}
	recs, err := s.store.TopQueries(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("faq_error", "failed to load trending queries", err)
	}
	return recs, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Entry, error) {
	question := strings.TrimSpace(req.Question)
	answer := strings.TrimSpace(req.Answer)
	if question == "" || answer == "" {
		return Entry{}, apperrors.Wrap(apperrors.CodeInvalidInput, "question and answer are required", nil)
	}

	var created Entry
	err := s.mutate(ctx, func(data *Data) error {
		if _, ok := data.Categories[req.Category]; !ok {
			return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown category %q", req.Category), nil)
		}
		var maxID int64
		for _, e := range data.FAQ {
			if e.ID > maxID {
				maxID = e.ID
			}
		}
		priority := len(data.FAQ) + 1
		if req.Priority != nil && *req.Priority != 0 {
			priority = *req.Priority
		}
		today := s.today()
		created = Entry{
			ID:        maxID + 1,
			Question:  question,
			Answer:    answer,
			Keywords:  cleanKeywords(req.Keywords),
			Category:  req.Category,
			Priority:  &priority,
			CreatedAt: today,
			UpdatedAt: today,
		}
		data.FAQ = append(data.FAQ, created)
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	s.logger.Info("faq entry created", "id", created.ID, "category", created.Category)
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (Entry, error) {
	var updated Entry
	err := s.mutate(ctx, func(data *Data) error {
		idx := indexOf(data.FAQ, id)
		if idx < 0 {
			return apperrors.Wrap(apperrors.CodeNotFound, "question not found", nil)
		}
		e := data.FAQ[idx]
		if req.Question != nil {
			q := strings.TrimSpace(*req.Question)
			if q == "" {
				return apperrors.Wrap(apperrors.CodeInvalidInput, "question cannot be empty", nil)
			}
			e.Question = q
		}
		if req.Answer != nil {
			a := strings.TrimSpace(*req.Answer)
			if a == "" {
				return apperrors.Wrap(apperrors.CodeInvalidInput, "answer cannot be empty", nil)
			}
			e.Answer = a
		}
		if req.Keywords != nil {
			e.Keywords = cleanKeywords(*req.Keywords)
		}
		if req.Category != nil {
			if _, ok := data.Categories[*req.Category]; !ok {
				return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown category %q", *req.Category), nil)
			}
			e.Category = *req.Category
		}
		if req.Priority != nil {
			p := *req.Priority
			e.Priority = &p
		}
		e.UpdatedAt = s.today()
		data.FAQ[idx] = e
		updated = e
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	s.logger.Info("faq entry updated", "id", id)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.mutate(ctx, func(data *Data) error {
		idx := indexOf(data.FAQ, id)
		if idx < 0 {
			return apperrors.Wrap(apperrors.CodeNotFound, "question not found", nil)
		}
		data.FAQ = append(data.FAQ[:idx], data.FAQ[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("faq entry deleted", "id", id)
	return nil
}

// mutate runs fn against a fresh copy of the document and saves the result.
func (s *service) mutate(ctx context.Context, fn func(*Data) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&data); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, data); err != nil {
		return apperrors.Wrap("faq_error", "failed to save faq data", err)
	}
	if s.archiver != nil {
		if err := s.archiver.ArchiveSnapshot(ctx, data); err != nil {
			s.logger.Warn("faq snapshot archive failed", "error", err)
		}
	}
	return nil
}

func (s *service) recordQuery(ctx context.Context, query string) {
	if s.store == nil {
		return
	}
	canonical := canonicalQuery(query)
	if canonical == "" {
		return
	}
	if err := s.store.IncrementQuery(ctx, canonical, query); err != nil {
		s.logger.Warn("faq trending increment failed", "error", err)
	}
}

func outcome(n int) string {
	if n == 0 {
		return "miss"
	}
	return "hit"
}

func indexOf(entries []Entry, id int64) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// recentEntries orders by created_at descending; entries without a date sort last.
func recentEntries(entries []Entry, limit int) []Entry {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt > sorted[j].CreatedAt })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// popularKeywords counts keyword occurrences; ties keep first-seen order.
func popularKeywords(entries []Entry, limit int) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, e := range entries {
		for _, kw := range e.Keywords {
			if _, seen := counts[kw]; !seen {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
