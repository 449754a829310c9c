package faq

// NoPriority is the ordering value used for entries without a priority.
const NoPriority = 999

// Entry is a single FAQ record.
type Entry struct {
	ID        int64    `json:"id"`
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Keywords  []string `json:"keywords"`
	Category  string   `json:"category"`
	Priority  *int     `json:"priority"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// PriorityOrNone returns the priority or NoPriority when absent.
func (e Entry) PriorityOrNone() int {
	if e.Priority == nil {
		return NoPriority
	}
	return *e.Priority
}

func (e Entry) clone() Entry {
	out := e
	if e.Keywords != nil {
		out.Keywords = append([]string(nil), e.Keywords...)
	}
	if e.Priority != nil {
		p := *e.Priority
		out.Priority = &p
	}
	return out
}

// Categories maps a category key to its display label.
type Categories map[string]string

// Metadata is rewritten on every save.
type Metadata struct {
	Version         string `json:"version"`
	LastUpdated     string `json:"last_updated"`
	TotalQuestions  int    `json:"total_questions"`
	CategoriesCount int    `json:"categories_count"`
}

// Data is the whole FAQ document as stored on disk.
type Data struct {
	FAQ        []Entry    `json:"faq"`
	Categories Categories `json:"categories"`
	Metadata   *Metadata  `json:"metadata,omitempty"`
}

// Clone returns a deep copy that shares no memory with d.
func (d Data) Clone() Data {
	out := Data{}
	if d.FAQ != nil {
		out.FAQ = make([]Entry, len(d.FAQ))
		for i, e := range d.FAQ {
			out.FAQ[i] = e.clone()
		}
	}
	if d.Categories != nil {
		out.Categories = make(Categories, len(d.Categories))
		for k, v := range d.Categories {
			out.Categories[k] = v
		}
	}
	if d.Metadata != nil {
		m := *d.Metadata
		out.Metadata = &m
	}
	return out
}

// MatchType names the field that drove a fuzzy match.
type MatchType string

const (
	MatchQuestion MatchType = "question"
	MatchKeywords MatchType = "keywords"
	MatchAnswer   MatchType = "answer"
)

// ScoredEntry is the transient result of scoring one entry.
type ScoredEntry struct {
	Entry     Entry
	Score     float64
	MatchType MatchType
}

// FuzzyMatch is a ranked entry as exposed to callers.
type FuzzyMatch struct {
	ID             int64     `json:"id"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	Keywords       []string  `json:"keywords"`
	Category       string    `json:"category"`
	RelevanceScore int       `json:"relevance_score"`
	MatchType      MatchType `json:"match_type"`
}

// FuzzyResult is the ranked search response.
type FuzzyResult struct {
	Success      bool         `json:"success"`
	Query        string       `json:"query"`
	ResultsCount int          `json:"results_count"`
	Matches      []FuzzyMatch `json:"matches"`
	Suggestions  []string     `json:"suggestions"`
	Message      string       `json:"message,omitempty"`
}

// SearchResult mirrors the document shape for exact search responses.
type SearchResult struct {
	FAQ        []Entry    `json:"faq"`
	Categories Categories `json:"categories"`
}

// CreateRequest is the admin payload for a new entry.
type CreateRequest struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
	Category string   `json:"category"`
	Priority *int     `json:"priority"`
}

// UpdateRequest changes only the fields that are set.
type UpdateRequest struct {
	Question *string   `json:"question"`
	Answer   *string   `json:"answer"`
	Keywords *[]string `json:"keywords"`
	Category *string   `json:"category"`
	Priority *int      `json:"priority"`
}

// Stats summarizes the FAQ collection.
type Stats struct {
	TotalQuestions      int            `json:"total_questions"`
	QuestionsByCategory map[string]int `json:"questions_by_category"`
	CategoriesCount     int            `json:"categories_count"`
	PopularKeywords     []string       `json:"popular_keywords"`
	RecentAdditions     []Entry        `json:"recent_additions"`
	PopularQuestions    []Entry        `json:"popular_questions"`
}

// TrendingQuery represents a frequently searched query.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}
