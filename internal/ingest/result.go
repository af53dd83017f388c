package ingest

import (
	"fmt"
	"math"

	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/pkg/formatter"
)

// State is where an item is in its pipeline.
type State int

const (
	StatePending State = iota
	StateFetching
	StateTransforming
	StateSaving
	StateDone
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFetching:
		return "fetching"
	case StateTransforming:
		return "transforming"
	case StateSaving:
		return "saving"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Outcome is the terminal classification of one item.
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeDuplicate
	OutcomeFetchFailed
	OutcomeTransformFailed
	OutcomeSaveFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeTransformFailed:
		return "transform_failed"
	case OutcomeSaveFailed:
		return "save_failed"
	}
	return "unknown"
}

func (o Outcome) IsError() bool {
	return o == OutcomeFetchFailed || o == OutcomeTransformFailed || o == OutcomeSaveFailed
}

const DuplicateMessage = "already saved to this board"

type ItemResult struct {
	Index        int
	URL          string
	Platform     domain.Platform
	Outcome      Outcome
	PostID       string
	NormalizedID string
	// State is the last state the item reached: StateDone for Success and
	// Duplicate, the failing state otherwise.
	State State
	// FailedIn is the state the item was in when it failed.
	FailedIn State
	Err      error
}

// UserMessage is what an interactive caller shows for this result.
func (r ItemResult) UserMessage() string {
	switch r.Outcome {
	case OutcomeSuccess:
		return "Saved to board"
	case OutcomeDuplicate:
		return DuplicateMessage
	}
	if r.Err != nil {
		return fmt.Sprintf("Failed to save: %v", r.Err)
	}
	return "Failed to save"
}

type Summary struct {
	RunID          string
	Total          int
	Success        int
	Duplicate      int
	Error          int
	SuccessRatePct float64
	Results        []ItemResult
	// NextOffset is the index of the first item not yet handled; pass it as
	// StartOffset to resume an interrupted run.
	NextOffset int
}

func (s *Summary) add(r ItemResult) {
	s.Total++
	switch {
	case r.Outcome == OutcomeSuccess:
		s.Success++
	case r.Outcome == OutcomeDuplicate:
		s.Duplicate++
	default:
		s.Error++
	}
	s.Results = append(s.Results, r)
}

func (s *Summary) finish() {
	s.SuccessRatePct = SuccessRate(s.Success, s.Duplicate, s.Total)
}

// SuccessRate is (success+duplicate)/total as a percentage rounded to one
// decimal place. An empty run has a rate of zero.
func SuccessRate(success, duplicate, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(success+duplicate) / float64(total) * 100
	return math.Round(pct*10) / 10
}

func (s Summary) String() string {
	return fmt.Sprintf("total=%d success=%d duplicate=%d error=%d success_rate=%s",
		s.Total, s.Success, s.Duplicate, s.Error, formatter.FormatPercent(s.SuccessRatePct))
}
