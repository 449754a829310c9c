package faqstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faqdesk/internal/domain/faq"
)

// ValkeyStore keeps trending counters in a sorted set and the display form of
// each query in a hash, so counts survive restarts and are shared by replicas.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "faqdesk"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) IncrementQuery(ctx context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	cmds := valkey.Commands{
		s.client.B().Zincrby().Key(s.trendingKey()).Increment(1).Member(canonical).Build(),
	}
	if display != "" {
		cmds = append(cmds, s.client.B().Hsetnx().Key(s.displayKey()).Field(canonical).Value(display).Build())
	}
	results := s.client.DoMulti(ctx, cmds...)
	// Only the counter matters; a lost display string falls back to the canonical form.
	return results[0].Error()
}

func (s *ValkeyStore) TopQueries(ctx context.Context, limit int) ([]faq.TrendingQuery, error) {
	if limit <= 0 {
		limit = 10
	}
	resp := s.client.Do(ctx, s.client.B().Zrevrange().Key(s.trendingKey()).Start(0).Stop(int64(limit-1)).Withscores().Build())
	reply, err := resp.ToAny()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return []faq.TrendingQuery{}, nil
		}
		return nil, err
	}

	members, scores, err := parseScoredMembers(reply)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []faq.TrendingQuery{}, nil
	}
	displays := s.fetchDisplays(ctx, members)

	out := make([]faq.TrendingQuery, len(members))
	for i := range members {
		out[i] = faq.TrendingQuery{Query: displays[i], Count: int64(scores[i])}
	}
	return out, nil
}

// parseScoredMembers accepts both decoded shapes of ZREVRANGE WITHSCORES:
// RESP3 nests [member, score] pairs, RESP2 alternates them in a flat array
// with scores as strings.
func parseScoredMembers(reply any) ([]string, []float64, error) {
	arr, ok := reply.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected trending reply %T", reply)
	}
	members := make([]string, 0, len(arr))
	scores := make([]float64, 0, len(arr))
	for i := 0; i < len(arr); {
		var member, score any
		if pair, isPair := arr[i].([]any); isPair {
			if len(pair) != 2 {
				return nil, nil, fmt.Errorf("unexpected trending pair of length %d", len(pair))
			}
			member, score = pair[0], pair[1]
			i++
		} else {
			if i+1 >= len(arr) {
				return nil, nil, fmt.Errorf("trending reply has odd length %d", len(arr))
			}
			member, score = arr[i], arr[i+1]
			i += 2
		}

		name, ok := member.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected trending member %T", member)
		}
		value, err := scoreValue(score)
		if err != nil {
			return nil, nil, err
		}
		members = append(members, name)
		scores = append(scores, value)
	}
	return members, scores, nil
}

func scoreValue(v any) (float64, error) {
	switch score := v.(type) {
	case float64:
		return score, nil
	case int64:
		return float64(score), nil
	case string:
		parsed, err := strconv.ParseFloat(score, 64)
		if err != nil {
			return 0, fmt.Errorf("parse trending score %q: %w", score, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unexpected trending score %T", v)
	}
}

func (s *ValkeyStore) fetchDisplays(ctx context.Context, canonical []string) []string {
	out := append([]string(nil), canonical...)
	resp := s.client.Do(ctx, s.client.B().Hmget().Key(s.displayKey()).Field(canonical...).Build())
	values, err := resp.ToArray()
	if err != nil {
		return out
	}
	for i, v := range values {
		if i >= len(out) {
			break
		}
		if display, err := v.ToString(); err == nil && display != "" {
			out[i] = display
		}
	}
	return out
}

func (s *ValkeyStore) trendingKey() string {
	return fmt.Sprintf("%s:trending", s.prefix)
}

func (s *ValkeyStore) displayKey() string {
	return fmt.Sprintf("%s:trending:display", s.prefix)
}

var _ faq.Store = (*ValkeyStore)(nil)
