package models

import "slices"

// SessionProgress represents the score, health and completion state of a session.
// It lives only as long as the session that owns it.
type SessionProgress struct {
	Hearts               int      `json:"hearts"`
	Experience           int      `json:"experience"`
	Streak               int      `json:"streak"`
	CompletedCategoryIDs []string `json:"completedCategoryIds"`
}

// NewSessionProgress creates progress with the given starting values
func NewSessionProgress(hearts, experience, streak int) *SessionProgress {
	return &SessionProgress{
		Hearts:               max(0, hearts),
		Experience:           max(0, experience),
		Streak:               max(0, streak),
		CompletedCategoryIDs: []string{},
	}
}

// IsCompleted reports whether the category has been completed in this session
func (p *SessionProgress) IsCompleted(categoryID string) bool {
	return slices.Contains(p.CompletedCategoryIDs, categoryID)
}

// MarkCompleted adds the category to the completed set.
// It returns false if the category was already completed.
func (p *SessionProgress) MarkCompleted(categoryID string) bool {
	if p.IsCompleted(categoryID) {
		return false
	}
	p.CompletedCategoryIDs = append(p.CompletedCategoryIDs, categoryID)
	return true
}

// Clone returns a deep copy of the progress
func (p *SessionProgress) Clone() SessionProgress {
	c := *p
	c.CompletedCategoryIDs = slices.Clone(p.CompletedCategoryIDs)
	if c.CompletedCategoryIDs == nil {
		c.CompletedCategoryIDs = []string{}
	}
	return c
}
