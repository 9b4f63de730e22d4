package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of quiz domain events
type EventType string

const (
	// Quiz events
	EventQuizGenerated EventType = "quiz.generated"

	// Attempt events
	EventAttemptSubmitted EventType = "attempt.submitted"
)

const eventSource = "quiz-service"

// QuizEvent is the base event structure for all quiz domain events
type QuizEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type QuizGeneratedEvent struct {
	QuizID        string `json:"quiz_id"`
	Title         string `json:"title"`
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
}

type AttemptSubmittedEvent struct {
	AttemptID      string  `json:"attempt_id"`
	QuizID         string  `json:"quiz_id"`
	UserID         string  `json:"user_id"`
	Score          float64 `json:"score"`
	CorrectCount   int     `json:"correct_count"`
	TotalQuestions int     `json:"total_questions"`
	TimeTaken      int     `json:"time_taken"`
}

func newEvent(eventType EventType, data interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      data,
	}
}

// NewQuizGeneratedEvent builds the event published after a quiz is persisted.
func NewQuizGeneratedEvent(data QuizGeneratedEvent) *QuizEvent {
	return newEvent(EventQuizGenerated, data)
}

// NewAttemptSubmittedEvent builds the event published after an attempt is
// persisted and scored.
func NewAttemptSubmittedEvent(data AttemptSubmittedEvent) *QuizEvent {
	return newEvent(EventAttemptSubmitted, data)
}
