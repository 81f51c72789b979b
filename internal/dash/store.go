package dash

import (
	"sync"
	"time"

	"github.com/you/skin-arb/internal/types"
)

// Summary describes the batch currently served.
type Summary struct {
	BatchID    string            `json:"batchId"`
	ComputedAt time.Time         `json:"computedAt"`
	Total      int               `json:"total"`
	Profitable int               `json:"profitable"`
	BestROI    float64           `json:"bestROI"`
	BestItem   string            `json:"bestItem,omitempty"`
	FeedErrors map[string]string `json:"feedErrors,omitempty"`
}

// Store holds the latest batch. A batch is never mutated after Replace; the
// next refresh swaps it out wholesale.
type Store struct {
	mu      sync.RWMutex
	batch   types.Batch
	byName  map[string]int
	summary Summary
}

func NewStore() *Store { return &Store{byName: map[string]int{}} }

func (s *Store) Replace(b types.Batch) Summary {
	idx := make(map[string]int, len(b.Opportunities))
	sum := Summary{
		BatchID:    b.ID,
		ComputedAt: b.ComputedAt,
		Total:      len(b.Opportunities),
		FeedErrors: b.FeedErrors,
	}
	for i, o := range b.Opportunities {
		idx[o.ItemName] = i
		if o.Profitable {
			sum.Profitable++
		}
		if sum.BestItem == "" || o.BestROI > sum.BestROI {
			sum.BestROI, sum.BestItem = o.BestROI, o.ItemName
		}
	}

	s.mu.Lock()
	s.batch, s.byName, s.summary = b, idx, sum
	s.mu.Unlock()
	return sum
}

func (s *Store) Get(name string) (types.Opportunity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byName[name]
	if !ok {
		return types.Opportunity{}, false
	}
	return s.batch.Opportunities[i], true
}

func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Query filters, sorts and paginates the current batch.
func (s *Store) Query(q Query) Page {
	s.mu.RLock()
	opps := s.batch.Opportunities
	s.mu.RUnlock()
	return q.Apply(opps)
}
