package models

import "time"

// TurnPhase tags the lifecycle state of a chat turn. A turn is created
// pending, then resolved or failed in place once the backend call settles.
type TurnPhase string

const (
	TurnPending  TurnPhase = "pending"
	TurnResolved TurnPhase = "resolved"
	TurnFailed   TurnPhase = "failed"
)

// ChatTurn is one question/answer exchange scoped to a specific upload.
// While Phase is TurnPending the answer is empty; for TurnFailed the answer
// holds a user-facing fallback message.
type ChatTurn struct {
	Question          string    `json:"question"`
	Answer            string    `json:"answer"`
	ClarifiedQuestion string    `json:"clarified_question,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	Phase             TurnPhase `json:"phase"`
}

// ClarifiedDiffers reports whether the backend restated the question into
// something other than what the user typed. When the clarified text matches
// the original, presentation suppresses it.
func (t ChatTurn) ClarifiedDiffers() bool {
	return t.ClarifiedQuestion != "" && t.ClarifiedQuestion != t.Question
}
