package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

const (
	DefaultQuestionCount = 5
	DefaultTimeLimit     = 10 // minutes
)

type Quiz struct {
	ID          string          `json:"id" gorm:"primaryKey;size:36"`
	Title       string          `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Topic       string          `json:"topic" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description string          `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Difficulty  DifficultyLevel `json:"difficulty" gorm:"default:medium;size:10" validate:"omitempty,difficulty_level"`
	TimeLimit   int             `json:"time_limit" gorm:"default:10" validate:"omitempty,min=1,max=300"` // Minutes

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Question order is fixed at creation; Position defines numbering.
	Questions []QuizQuestion `json:"questions" gorm:"foreignKey:QuizID"`
}

type QuizQuestion struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	QuizID   string `json:"quiz_id" gorm:"not null;size:36;index"`
	Position int    `json:"position" gorm:"not null"`

	Text          string          `json:"question" gorm:"not null;type:text"`
	Options       datatypes.JSON  `json:"options" gorm:"not null"` // JSON array of option strings
	CorrectAnswer string          `json:"correct_answer" gorm:"not null;type:text"`
	Explanation   string          `json:"explanation" gorm:"type:text"`
	Difficulty    DifficultyLevel `json:"difficulty" gorm:"default:medium;size:10"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// OptionValues decodes the JSON options column into an ordered string slice.
func (q *QuizQuestion) OptionValues() ([]string, error) {
	var options []string
	if len(q.Options) == 0 {
		return options, nil
	}
	if err := json.Unmarshal(q.Options, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// SetOptionValues encodes an ordered option slice into the JSON column.
func (q *QuizQuestion) SetOptionValues(options []string) error {
	raw, err := json.Marshal(options)
	if err != nil {
		return err
	}
	q.Options = raw
	return nil
}
