package transport

import "github.com/google/uuid"

// RunScoringRequest asks for a scoring run on one contact.
type RunScoringRequest struct {
	ContactID uuid.UUID `json:"contact_id" validate:"required"`
}

// ScoringFactors mirrors the category breakdown in API responses.
type ScoringFactors struct {
	Demographic  int `json:"demographic"`
	Firmographic int `json:"firmographic"`
	Behavioral   int `json:"behavioral"`
	Engagement   int `json:"engagement"`
}

// RunScoringResponse is the scoring run result envelope.
type RunScoringResponse struct {
	Success       bool           `json:"success"`
	Score         int            `json:"score"`
	Factors       ScoringFactors `json:"factors"`
	PreviousScore int            `json:"previous_score"`
}

// HistoryEntryResponse is one lead scoring history row.
type HistoryEntryResponse struct {
	ID            uuid.UUID      `json:"id"`
	Score         int            `json:"score"`
	PreviousScore int            `json:"previous_score"`
	ScoreChange   int            `json:"score_change"`
	Factors       ScoringFactors `json:"factors"`
	ScoreReason   string         `json:"score_reason"`
	CreatedAt     string         `json:"created_at"`
}

// HistoryResponse wraps a contact's scoring history.
type HistoryResponse struct {
	Items []HistoryEntryResponse `json:"items"`
	Total int                    `json:"total"`
}
