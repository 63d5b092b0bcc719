package mapquiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
)

// DefaultHintAfter is the number of consecutive misses after which the
// current region is highlighted on every further miss.
const DefaultHintAfter = 3

var (
	// ErrNoRegions is returned when a quiz has nothing to ask.
	ErrNoRegions = errors.New("mapquiz: quiz needs at least one region")
	// ErrUnknownRegion is returned when an answer names a region the quiz
	// does not know.
	ErrUnknownRegion = errors.New("mapquiz: unknown region")
	// ErrDuplicateRegion is returned when two regions share an id.
	ErrDuplicateRegion = errors.New("mapquiz: duplicate region id")
)

// AnswerResult is the outcome of a click on a region.
type AnswerResult uint8

const (
	AnswerIgnored   AnswerResult = iota // no prompt active; region was highlighted
	AnswerCorrect                       // region matched the prompt
	AnswerIncorrect                     // region did not match the prompt
)

// String returns the lower-case result name.
func (a AnswerResult) String() string {
	switch a {
	case AnswerCorrect:
		return "correct"
	case AnswerIncorrect:
		return "incorrect"
	default:
		return "ignored"
	}
}

// Quiz tracks the prompt sequence, progress and mistakes of one round.
type Quiz struct {
	regions map[string]*Region
	order   []*Region

	pool      []*Region
	current   *Region
	done      []*Region
	misses    int
	incorrect []*Region

	start, end time.Time

	// HintAfter is the consecutive-miss count beyond which the current
	// region is highlighted.
	HintAfter int

	rng *rand.Rand
	now func() time.Time
}

// NewQuiz creates a quiz over regions and starts the first round. rng may
// be nil for a randomly seeded generator.
func NewQuiz(regions []*Region, rng *rand.Rand) (*Quiz, error) {
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}
	q := &Quiz{
		regions:   make(map[string]*Region, len(regions)),
		HintAfter: DefaultHintAfter,
		rng:       rng,
		now:       time.Now,
	}
	if q.rng == nil {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	for _, r := range regions {
		if r == nil {
			return nil, fmt.Errorf("%w: nil region", ErrUnknownRegion)
		}
		if _, ok := q.regions[r.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRegion, r.ID)
		}
		q.regions[r.ID] = r
		q.order = append(q.order, r)
	}
	q.Restart()
	return q, nil
}

// SetClock replaces the time source used by the stopwatch.
func (q *Quiz) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	q.now = now
	q.start = now()
	q.end = time.Time{}
}

// Restart begins a new round over every region.
func (q *Quiz) Restart() {
	q.restart(q.order)
}

// Review begins a new round over the regions missed in the last round.
// Returns false, leaving the quiz untouched, when the round is not finished
// or nothing was missed.
func (q *Quiz) Review() bool {
	if !q.CanReview() {
		return false
	}
	q.restart(slices.Clone(q.incorrect))
	return true
}

func (q *Quiz) restart(pool []*Region) {
	for _, r := range q.order {
		r.Reset()
	}
	q.pool = slices.Clone(pool)
	q.done = q.done[:0]
	q.incorrect = nil
	q.misses = 0
	q.current = q.pool[q.rng.IntN(len(q.pool))]
	q.start = q.now()
	q.end = time.Time{}
}

// Answer records a click on the region with the given id.
//
// With no active prompt the region is only highlighted. A correct answer
// marks the region and advances the prompt. An incorrect answer flashes the
// clicked region, counts a miss, records the prompt for review and, once
// more than HintAfter misses in a row have happened, highlights the
// expected region.
func (q *Quiz) Answer(id string) (AnswerResult, error) {
	r, ok := q.regions[id]
	if !ok {
		return AnswerIgnored, fmt.Errorf("%w: %q", ErrUnknownRegion, id)
	}
	if q.current == nil {
		r.Highlight()
		return AnswerIgnored, nil
	}
	if r.Name == q.current.Name {
		r.MarkCorrect()
		q.advance()
		return AnswerCorrect, nil
	}

	r.MarkIncorrect()
	q.misses++
	if q.misses > q.HintAfter {
		q.current.Highlight()
	}
	if !slices.Contains(q.incorrect, q.current) {
		q.incorrect = append(q.incorrect, q.current)
	}
	return AnswerIncorrect, nil
}

// advance moves the current prompt to done and picks the next one.
func (q *Quiz) advance() {
	q.misses = 0
	q.done = append(q.done, q.current)

	left := make([]*Region, 0, len(q.pool))
	for _, r := range q.pool {
		if !slices.Contains(q.done, r) {
			left = append(left, r)
		}
	}
	if len(left) == 0 {
		q.current = nil
		q.end = q.now()
		return
	}
	q.current = left[q.rng.IntN(len(left))]
}

// Current returns the region being asked for, or nil once finished.
func (q *Quiz) Current() *Region { return q.current }

// Prompt returns the text shown to the user.
func (q *Quiz) Prompt() string {
	if q.current == nil {
		return "Finished."
	}
	return q.current.Name
}

// Region returns the region with the given id.
func (q *Quiz) Region(id string) (*Region, bool) {
	r, ok := q.regions[id]
	return r, ok
}

// Regions returns all regions in definition order. The returned slice MUST
// NOT be mutated.
func (q *Quiz) Regions() []*Region { return q.order }

// Progress returns the number of regions found and the round size.
func (q *Quiz) Progress() (done, total int) {
	return len(q.done), len(q.pool)
}

// Misses returns the current run of consecutive incorrect answers.
func (q *Quiz) Misses() int { return q.misses }

// Incorrect returns the prompts missed at least once this round. The
// returned slice MUST NOT be mutated.
func (q *Quiz) Incorrect() []*Region { return q.incorrect }

// Finished reports whether every region of the round has been found.
func (q *Quiz) Finished() bool { return q.current == nil }

// CanReview reports whether a review round is available.
func (q *Quiz) CanReview() bool {
	return q.Finished() && len(q.incorrect) > 0
}

// Elapsed returns the round time so far, frozen once finished.
func (q *Quiz) Elapsed() time.Duration {
	if q.Finished() {
		return q.end.Sub(q.start)
	}
	return q.now().Sub(q.start)
}

// FormatStopwatch formats d as minutes and zero-padded seconds, e.g. "3:07".
func FormatStopwatch(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
