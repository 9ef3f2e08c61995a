package entities

import (
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/sales-review/internal/domain/scoring"
)

// Evaluation is the scored assessment of a salesperson in one meeting.
// It is written once and never updated.
type Evaluation struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MeetingID     uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex"`
	EvaluatorID   uuid.UUID `json:"evaluator_id" gorm:"type:uuid;not null;index"`
	EvaluatorName string    `json:"evaluator_name" gorm:"type:varchar(255);not null"`

	Score1  int `json:"score1" gorm:"not null"`
	Score2  int `json:"score2" gorm:"not null"`
	Score3  int `json:"score3" gorm:"not null"`
	Score4  int `json:"score4" gorm:"not null"`
	Score5  int `json:"score5" gorm:"not null"`
	Score6  int `json:"score6" gorm:"not null"`
	Score7  int `json:"score7" gorm:"not null"`
	Score8  int `json:"score8" gorm:"not null"`
	Score9  int `json:"score9" gorm:"not null"`
	Score10 int `json:"score10" gorm:"not null"`
	Score11 int `json:"score11" gorm:"not null"`
	Score12 int `json:"score12" gorm:"not null"`
	Score13 int `json:"score13" gorm:"not null"`
	Score14 int `json:"score14" gorm:"not null"`
	Score15 int `json:"score15" gorm:"not null"`
	Score16 int `json:"score16" gorm:"not null"`
	Score17 int `json:"score17" gorm:"not null"`
	Score18 int `json:"score18" gorm:"not null"`
	Score19 int `json:"score19" gorm:"not null"`
	Score20 int `json:"score20" gorm:"not null"`

	TotalScore       int           `json:"total_score" gorm:"not null"`
	PerformanceLevel scoring.Level `json:"performance_level" gorm:"type:varchar(32);not null"`
	ManualNotes      *string       `json:"manual_notes,omitempty" gorm:"type:text"`
	EvaluatedAt      time.Time     `json:"evaluated_at" gorm:"not null"`
}

// NewEvaluation builds an evaluation from a scored sheet.
func NewEvaluation(meetingID, evaluatorID uuid.UUID, evaluatorName string, res scoring.Result, notes *string) *Evaluation {
	e := &Evaluation{
		ID:               uuid.New(),
		MeetingID:        meetingID,
		EvaluatorID:      evaluatorID,
		EvaluatorName:    evaluatorName,
		TotalScore:       res.Total,
		PerformanceLevel: res.Level,
		ManualNotes:      notes,
		EvaluatedAt:      time.Now().UTC(),
	}
	e.setScores(res.Scores)
	return e
}

// Sheet returns the item scores in rubric order.
func (e *Evaluation) Sheet() scoring.Sheet {
	return scoring.Sheet{
		e.Score1, e.Score2, e.Score3, e.Score4, e.Score5,
		e.Score6, e.Score7, e.Score8, e.Score9, e.Score10,
		e.Score11, e.Score12, e.Score13, e.Score14, e.Score15,
		e.Score16, e.Score17, e.Score18, e.Score19, e.Score20,
	}
}

func (e *Evaluation) setScores(s scoring.Sheet) {
	e.Score1, e.Score2, e.Score3, e.Score4, e.Score5 = s[0], s[1], s[2], s[3], s[4]
	e.Score6, e.Score7, e.Score8, e.Score9, e.Score10 = s[5], s[6], s[7], s[8], s[9]
	e.Score11, e.Score12, e.Score13, e.Score14, e.Score15 = s[10], s[11], s[12], s[13], s[14]
	e.Score16, e.Score17, e.Score18, e.Score19, e.Score20 = s[15], s[16], s[17], s[18], s[19]
}
