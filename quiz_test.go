package mapquiz

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"
)

func testRegions(t *testing.T) []*Region {
	t.Helper()
	return []*Region{
		mustRegion(t, "a", "Alpha", square(0, 0, 10)),
		mustRegion(t, "b", "Beta", square(10, 0, 10)),
		mustRegion(t, "c", "Gamma", square(20, 0, 10)),
	}
}

func newTestQuiz(t *testing.T) *Quiz {
	t.Helper()
	q, err := NewQuiz(testRegions(t), rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatal(err)
	}
	return q
}

// wrongID returns the id of a region that is not the current prompt.
func wrongID(q *Quiz) string {
	for _, r := range q.Regions() {
		if r != q.Current() && !r.Correct() {
			return r.ID
		}
	}
	return ""
}

func TestNewQuizErrors(t *testing.T) {
	if _, err := NewQuiz(nil, nil); !errors.Is(err, ErrNoRegions) {
		t.Errorf("no regions: err = %v", err)
	}
	a := mustRegion(t, "a", "A", square(0, 0, 1))
	b := mustRegion(t, "a", "B", square(0, 0, 1))
	if _, err := NewQuiz([]*Region{a, b}, nil); !errors.Is(err, ErrDuplicateRegion) {
		t.Errorf("duplicate: err = %v", err)
	}
}

func TestQuizFullRound(t *testing.T) {
	q := newTestQuiz(t)
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		cur := q.Current()
		if cur == nil {
			t.Fatalf("finished early after %d answers", i)
		}
		if seen[cur.ID] {
			t.Fatalf("prompt %q asked twice", cur.ID)
		}
		seen[cur.ID] = true
		res, err := q.Answer(cur.ID)
		if err != nil || res != AnswerCorrect {
			t.Fatalf("Answer(%q) = %v, %v", cur.ID, res, err)
		}
		if !cur.Correct() {
			t.Errorf("%q not marked correct", cur.ID)
		}
	}
	if !q.Finished() || q.Prompt() != "Finished." {
		t.Errorf("Finished = %v, Prompt = %q", q.Finished(), q.Prompt())
	}
	if done, total := q.Progress(); done != 3 || total != 3 {
		t.Errorf("Progress = %d/%d, want 3/3", done, total)
	}
	if q.CanReview() {
		t.Error("CanReview = true without misses")
	}
}

func TestQuizIncorrectAnswer(t *testing.T) {
	q := newTestQuiz(t)
	cur := q.Current()
	wrong := wrongID(q)

	res, err := q.Answer(wrong)
	if err != nil || res != AnswerIncorrect {
		t.Fatalf("Answer(wrong) = %v, %v", res, err)
	}
	if q.Current() != cur {
		t.Error("prompt advanced after a wrong answer")
	}
	w, _ := q.Region(wrong)
	if !w.Flashing() {
		t.Error("wrong region is not flashing")
	}
	if q.Misses() != 1 {
		t.Errorf("Misses = %d, want 1", q.Misses())
	}
	if len(q.Incorrect()) != 1 || q.Incorrect()[0] != cur {
		t.Errorf("Incorrect = %v, want the prompt", q.Incorrect())
	}

	// A second miss on the same prompt does not duplicate it.
	w.update(10)
	_, _ = q.Answer(wrong)
	if len(q.Incorrect()) != 1 {
		t.Errorf("Incorrect = %d entries, want 1", len(q.Incorrect()))
	}
}

func TestQuizHintAfterMisses(t *testing.T) {
	q := newTestQuiz(t)
	q.HintAfter = 2
	cur := q.Current()
	wrong := wrongID(q)
	w, _ := q.Region(wrong)

	for i := 1; i <= 3; i++ {
		w.update(10) // let the flash finish
		_, _ = q.Answer(wrong)
		if got := cur.Highlighted(); got != (i > 2) {
			t.Errorf("after %d misses Highlighted = %v", i, got)
		}
	}

	_, _ = q.Answer(cur.ID)
	if q.Misses() != 0 {
		t.Errorf("Misses = %d after a correct answer, want 0", q.Misses())
	}
}

func TestQuizAnswerUnknown(t *testing.T) {
	q := newTestQuiz(t)
	if _, err := q.Answer("nope"); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("err = %v, want ErrUnknownRegion", err)
	}
}

func TestQuizAnswerAfterFinishHighlights(t *testing.T) {
	q := newTestQuiz(t)
	for q.Current() != nil {
		_, _ = q.Answer(q.Current().ID)
	}
	res, err := q.Answer("a")
	if err != nil || res != AnswerIgnored {
		t.Fatalf("Answer after finish = %v, %v", res, err)
	}
	a, _ := q.Region("a")
	if !a.Highlighted() {
		t.Error("region not highlighted after finish")
	}
}

func TestQuizReview(t *testing.T) {
	q := newTestQuiz(t)
	if q.Review() {
		t.Fatal("Review = true on an unfinished round")
	}
	missed := q.Current()
	_, _ = q.Answer(wrongID(q))
	for q.Current() != nil {
		_, _ = q.Answer(q.Current().ID)
	}
	if !q.CanReview() {
		t.Fatal("CanReview = false after a round with a miss")
	}
	if !q.Review() {
		t.Fatal("Review = false")
	}
	if q.Current() != missed {
		t.Errorf("review prompt = %v, want %v", q.Current().ID, missed.ID)
	}
	if _, total := q.Progress(); total != 1 {
		t.Errorf("review round size = %d, want 1", total)
	}
	for _, r := range q.Regions() {
		if r.Correct() {
			t.Errorf("%q still marked correct in review", r.ID)
		}
	}
}

func TestQuizRestart(t *testing.T) {
	q := newTestQuiz(t)
	_, _ = q.Answer(q.Current().ID)
	q.Restart()
	if done, total := q.Progress(); done != 0 || total != 3 {
		t.Errorf("Progress after restart = %d/%d", done, total)
	}
	for _, r := range q.Regions() {
		if r.Correct() {
			t.Errorf("%q still correct after restart", r.ID)
		}
	}
}

func TestQuizStopwatch(t *testing.T) {
	q := newTestQuiz(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	q.SetClock(func() time.Time { return now })

	now = now.Add(65 * time.Second)
	if got := q.Elapsed(); got != 65*time.Second {
		t.Errorf("Elapsed = %v, want 65s", got)
	}
	for q.Current() != nil {
		_, _ = q.Answer(q.Current().ID)
	}
	now = now.Add(time.Hour)
	if got := q.Elapsed(); got != 65*time.Second {
		t.Errorf("Elapsed after finish = %v, want frozen at 65s", got)
	}
}

func TestFormatStopwatch(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{7 * time.Second, "0:07"},
		{187 * time.Second, "3:07"},
		{59*time.Minute + 59*time.Second + 900*time.Millisecond, "59:59"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatStopwatch(tt.d); got != tt.want {
			t.Errorf("FormatStopwatch(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestAnswerResultString(t *testing.T) {
	if AnswerCorrect.String() != "correct" || AnswerIncorrect.String() != "incorrect" || AnswerIgnored.String() != "ignored" {
		t.Error("unexpected AnswerResult names")
	}
}
