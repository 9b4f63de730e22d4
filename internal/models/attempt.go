package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AttemptAnswer is one processed answer embedded in a QuizAttempt. Submitted
// answers whose question ID does not belong to the quiz are never stored.
type AttemptAnswer struct {
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
	IsCorrect  bool   `json:"is_correct"`
}

type QuizAttempt struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	UserID string `json:"user_id" gorm:"not null;size:255;index"`
	QuizID string `json:"quiz_id" gorm:"not null;size:36;index"`

	Answers   datatypes.JSON `json:"answers"` // JSON array of AttemptAnswer
	Score     float64        `json:"score" gorm:"not null" validate:"min=0,max=100"`
	TimeTaken int            `json:"time_taken" gorm:"default:0"` // Seconds
	Completed bool           `json:"completed" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// No FK constraint on purpose: attempts outlive their quiz, and quiz_id
	// stays NOT NULL as a historical reference. Quiz is nil when the row is
	// gone.
	Quiz *Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID;constraint:-"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

func (a *QuizAttempt) AnswerValues() ([]AttemptAnswer, error) {
	var answers []AttemptAnswer
	if len(a.Answers) == 0 {
		return answers, nil
	}
	if err := json.Unmarshal(a.Answers, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (a *QuizAttempt) SetAnswerValues(answers []AttemptAnswer) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	a.Answers = raw
	return nil
}
