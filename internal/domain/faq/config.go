package faq

// Config holds runtime knobs for the FAQ service.
type Config struct {
	TrendingLimit int
	PopularLimit  int
	RecentLimit   int
}

func (c Config) withDefaults() Config {
	if c.TrendingLimit <= 0 {
		c.TrendingLimit = 10
	}
	if c.PopularLimit <= 0 {
		c.PopularLimit = 5
	}
	if c.RecentLimit <= 0 {
		c.RecentLimit = 5
	}
	return c
}
