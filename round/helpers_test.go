package round_test

import (
	"errors"
	"sync"

	"github.com/go-kit/kit/metrics"
)

var errBoom = errors.New("boom")

// sum folds ints; failOn makes Transition fail on that row.
type sum struct {
	failOn int
}

func (sum) Init() (int, error) { return 0, nil }

func (a sum) Transition(s, r int) (int, error) {
	if a.failOn != 0 && r == a.failOn {
		return s, errBoom
	}
	return s + r, nil
}

func (sum) Merge(left, right int) (int, error) { return left + right, nil }

func (sum) Final(s int) (int, error) { return s, nil }

// concat keeps merge order observable.
type concat struct{}

func (concat) Init() (string, error) { return "", nil }

func (concat) Transition(s, r string) (string, error) { return s + r, nil }

func (concat) Merge(left, right string) (string, error) { return left + right, nil }

func (concat) Final(s string) (string, error) { return "<" + s + ">", nil }

// tally is a metrics.Counter and metrics.Histogram keyed by label values.
type tally struct {
	mu     *sync.Mutex
	counts map[string]float64
	label  string
}

func newTally() *tally {
	return &tally{mu: &sync.Mutex{}, counts: map[string]float64{}}
}

func (t *tally) With(lvs ...string) *tally {
	key := ""
	if len(lvs) == 2 {
		key = lvs[1]
	}
	return &tally{mu: t.mu, counts: t.counts, label: key}
}

func (t *tally) add() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[t.label]++
}

func (t *tally) get(label string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[label]
}

type counter struct{ *tally }

func (c counter) With(lvs ...string) metrics.Counter { return counter{c.tally.With(lvs...)} }

func (c counter) Add(float64) { c.add() }

type histogram struct{ *tally }

func (h histogram) With(lvs ...string) metrics.Histogram { return histogram{h.tally.With(lvs...)} }

func (h histogram) Observe(float64) { h.add() }
