package models

import "time"

// LearningEntry is a note a learner wrote down after studying
type LearningEntry struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
	Course string    `json:"course,omitempty"`
}
