package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCandidateFlagAccessors(t *testing.T) {
	var c Candidate
	for _, f := range CandidateFlags {
		assert.True(t, f.Valid())
		assert.False(t, c.Flag(f))
		c.SetFlag(f, true)
		assert.True(t, c.Flag(f))
	}

	c.SetFlag(CandidateFlag("deleted"), true)
	assert.False(t, CandidateFlag("deleted").Valid())
	assert.False(t, c.Flag("deleted"))
}

func TestSetFlagTouchesOnlyOneField(t *testing.T) {
	var c Candidate
	c.SetFlag(FlagAttendedIntro, true)

	assert.True(t, c.AttendedIntro)
	assert.False(t, c.AttendedSession)
	assert.False(t, c.ContactedCall)
	assert.False(t, c.ContactedWhatsApp)
}

func TestQualificationValid(t *testing.T) {
	assert.True(t, QualificationMTech.Valid())
	assert.False(t, Qualification("PhD").Valid())
	assert.False(t, Qualification("").Valid())
}

func TestBatchWindowLabel(t *testing.T) {
	w := BatchWindow{
		ID:        "Batch 36",
		StartDate: time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "Batch 36 (Oct 19, 2026 - Oct 31, 2026)", w.Label())
}
