package game

import (
	"math/rand"
	"time"
)

// Status is the phase of a practice round.
type Status int

const (
	StatusLoading  Status = iota // Waiting for sentences
	StatusError                  // Fetch failed, retry possible
	StatusReady                  // Sentences loaded, nothing typed for the current one
	StatusTyping                 // Current sentence partially typed
	StatusComplete               // Current sentence matched, waiting for Advance
	StatusFinished               // Last sentence done, timer frozen
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	case StatusTyping:
		return "typing"
	case StatusComplete:
		return "complete"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is what a call to Type caused.
type Event int

const (
	EventNone Event = iota
	EventSentenceComplete
	EventRoundFinished
)

// Stats summarizes the typing performance of a round.
type Stats struct {
	Sentences  int
	Characters int
	Keystrokes int
	Mistakes   int
	Elapsed    time.Duration
	WPM        float64
	Accuracy   float64 // Percent of keystrokes that were correct
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithShuffle shuffles every loaded sentence list using r.
func WithShuffle(r *rand.Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// WithLimit keeps at most n sentences per round. Zero means no limit.
func WithLimit(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.limit = n
		}
	}
}

// Session tracks one practice round: the sentence list, the position in
// it, the input buffer and the timer. It is not safe for concurrent use;
// the UI event loop owns it.
type Session struct {
	now   func() time.Time
	rng   *rand.Rand
	limit int

	status     Status
	err        error
	generation int

	sentences []string
	index     int
	input     string

	startedAt  time.Time
	finishedAt time.Time

	keystrokes int
	mistakes   int
	characters int
}

// NewSession creates a session in the loading state.
func NewSession(opts ...Option) *Session {
	s := &Session{
		now:    time.Now,
		status: StatusLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BeginLoad marks a fetch as in flight and returns its generation.
// Results for older generations should be dropped by the caller.
func (s *Session) BeginLoad() int {
	s.generation++
	s.status = StatusLoading
	s.err = nil
	return s.generation
}

// Generation returns the generation of the latest BeginLoad.
func (s *Session) Generation() int {
	return s.generation
}

// Load installs a freshly fetched sentence list and makes the round ready.
func (s *Session) Load(sentences []string) {
	list := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		if sentence != "" {
			list = append(list, sentence)
		}
	}

	if s.rng != nil {
		s.rng.Shuffle(len(list), func(i, j int) {
			list[i], list[j] = list[j], list[i]
		})
	}
	if s.limit > 0 && len(list) > s.limit {
		list = list[:s.limit]
	}

	s.reset()
	s.sentences = list
	s.status = StatusReady
	s.err = nil
}

// Fail records a fetch error. The session can be retried with BeginLoad.
func (s *Session) Fail(err error) {
	s.status = StatusError
	s.err = err
}

// Restart discards the round and starts a new load.
func (s *Session) Restart() int {
	s.reset()
	s.sentences = nil
	return s.BeginLoad()
}

func (s *Session) reset() {
	s.index = 0
	s.input = ""
	s.startedAt = time.Time{}
	s.finishedAt = time.Time{}
	s.keystrokes = 0
	s.mistakes = 0
	s.characters = 0
}

// Type replaces the input buffer with input. The timer starts on the first
// non-empty input of the round.
func (s *Session) Type(input string) Event {
	if s.status != StatusReady && s.status != StatusTyping {
		return EventNone
	}
	if len(s.sentences) == 0 || input == s.input {
		return EventNone
	}

	target := s.Current()
	prev := []rune(s.input)
	next := []rune(input)
	for i := len(prev); i < len(next); i++ {
		s.keystrokes++
		if CharClassAt(i, input, target) != ClassCorrect {
			s.mistakes++
		}
	}

	if s.startedAt.IsZero() && input != "" {
		s.startedAt = s.now()
	}

	s.input = input
	s.status = StatusTyping

	if !IsSentenceComplete(input, target) {
		return EventNone
	}

	s.characters += len([]rune(target))
	s.status = StatusComplete
	if s.index == len(s.sentences)-1 {
		s.finishedAt = s.now()
		return EventRoundFinished
	}
	return EventSentenceComplete
}

// Advance moves past a completed sentence: to the next one with a cleared
// input, or to the finished state after the last. It reports whether the
// session was waiting to advance.
func (s *Session) Advance() bool {
	if s.status != StatusComplete {
		return false
	}
	if s.index >= len(s.sentences)-1 {
		s.status = StatusFinished
		return true
	}
	s.index++
	s.input = ""
	s.status = StatusReady
	return true
}

// Status returns the current phase.
func (s *Session) Status() Status {
	return s.status
}

// Err returns the error of the last failed load.
func (s *Session) Err() error {
	return s.err
}

// Current returns the sentence being typed, or "" when there is none.
func (s *Session) Current() string {
	if s.index < len(s.sentences) {
		return s.sentences[s.index]
	}
	return ""
}

// Input returns the input buffer.
func (s *Session) Input() string {
	return s.input
}

// Len returns the number of sentences in the round.
func (s *Session) Len() int {
	return len(s.sentences)
}

// Progress returns the 1-based position of the current sentence and the
// total. Both are zero when nothing is loaded.
func (s *Session) Progress() (current, total int) {
	total = len(s.sentences)
	if total == 0 {
		return 0, 0
	}
	return s.index + 1, total
}

// Running reports whether the timer is counting.
func (s *Session) Running() bool {
	return !s.startedAt.IsZero() && s.finishedAt.IsZero()
}

// Elapsed returns the time since the first keystroke, frozen once the last
// sentence is completed.
func (s *Session) Elapsed() time.Duration {
	switch {
	case s.startedAt.IsZero():
		return 0
	case !s.finishedAt.IsZero():
		return s.finishedAt.Sub(s.startedAt)
	default:
		return s.now().Sub(s.startedAt)
	}
}

// StartedAt returns when the first keystroke happened.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// FinishedAt returns when the last sentence was completed.
func (s *Session) FinishedAt() time.Time {
	return s.finishedAt
}

// Stats computes WPM and accuracy for the round so far.
func (s *Session) Stats() Stats {
	st := Stats{
		Sentences:  s.index,
		Characters: s.characters,
		Keystrokes: s.keystrokes,
		Mistakes:   s.mistakes,
		Elapsed:    s.Elapsed(),
	}
	if s.status == StatusComplete || s.status == StatusFinished {
		st.Sentences = s.index + 1
	}

	// Standard word length of five characters
	if minutes := st.Elapsed.Minutes(); minutes > 0 {
		st.WPM = float64(st.Characters) / 5 / minutes
	}
	if st.Keystrokes > 0 {
		st.Accuracy = float64(st.Keystrokes-st.Mistakes) / float64(st.Keystrokes) * 100
	}
	return st
}
