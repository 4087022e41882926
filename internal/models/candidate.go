package models

import "time"

// Qualification is the highest degree a candidate holds or is pursuing.
type Qualification string

const (
	QualificationBTech   Qualification = "B.Tech"
	QualificationBE      Qualification = "B.E"
	QualificationBSc     Qualification = "B.Sc"
	QualificationBCA     Qualification = "BCA"
	QualificationMCA     Qualification = "MCA"
	QualificationMTech   Qualification = "M.Tech"
	QualificationMSc     Qualification = "M.Sc"
	QualificationDiploma Qualification = "Diploma"
	QualificationOther   Qualification = "Other"
)

// Qualifications lists the accepted qualification values in display order.
var Qualifications = []Qualification{
	QualificationBTech,
	QualificationBE,
	QualificationBSc,
	QualificationBCA,
	QualificationMCA,
	QualificationMTech,
	QualificationMSc,
	QualificationDiploma,
	QualificationOther,
}

// Valid reports whether q is one of Qualifications.
func (q Qualification) Valid() bool {
	for _, known := range Qualifications {
		if q == known {
			return true
		}
	}
	return false
}

// CandidateFlag names one of the four review booleans toggled from the dashboard.
type CandidateFlag string

const (
	FlagContactedWhatsApp CandidateFlag = "contacted_whatsapp"
	FlagContactedCall     CandidateFlag = "contacted_call"
	FlagAttendedSession   CandidateFlag = "attended_session"
	FlagAttendedIntro     CandidateFlag = "attended_intro"
)

// CandidateFlags lists the togglable review flags.
var CandidateFlags = []CandidateFlag{
	FlagContactedWhatsApp,
	FlagContactedCall,
	FlagAttendedSession,
	FlagAttendedIntro,
}

// Valid reports whether f is a known review flag.
func (f CandidateFlag) Valid() bool {
	for _, known := range CandidateFlags {
		if f == known {
			return true
		}
	}
	return false
}

// Candidate is one stored application together with its review flags.
// Optional text fields are nil when the applicant did not provide them.
type Candidate struct {
	ID               string        `db:"id" json:"id"`
	FullName         string        `db:"full_name" json:"full_name"`
	Email            string        `db:"email" json:"email"`
	ContactNumber    string        `db:"contact_number" json:"contact_number"`
	Gender           *string       `db:"gender" json:"gender"`
	Qualification    Qualification `db:"qualification" json:"qualification"`
	YearOfCompletion string        `db:"year_of_completion" json:"year_of_completion"`
	CollegeName      string        `db:"college_name" json:"college_name"`
	HODName          *string       `db:"hod_name" json:"hod_name"`
	HODContact       *string       `db:"hod_contact" json:"hod_contact"`
	HODEmail         *string       `db:"hod_email" json:"hod_email"`
	Batch            string        `db:"batch" json:"batch"`
	Reference        string        `db:"reference" json:"reference"`

	ContactedWhatsApp bool `db:"contacted_whatsapp" json:"contacted_whatsapp"`
	ContactedCall     bool `db:"contacted_call" json:"contacted_call"`
	AttendedSession   bool `db:"attended_session" json:"attended_session"`
	AttendedIntro     bool `db:"attended_intro" json:"attended_intro"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Flag returns the current value of f.
func (c *Candidate) Flag(f CandidateFlag) bool {
	switch f {
	case FlagContactedWhatsApp:
		return c.ContactedWhatsApp
	case FlagContactedCall:
		return c.ContactedCall
	case FlagAttendedSession:
		return c.AttendedSession
	case FlagAttendedIntro:
		return c.AttendedIntro
	}
	return false
}

// SetFlag assigns value to f. Unknown flags are ignored.
func (c *Candidate) SetFlag(f CandidateFlag, value bool) {
	switch f {
	case FlagContactedWhatsApp:
		c.ContactedWhatsApp = value
	case FlagContactedCall:
		c.ContactedCall = value
	case FlagAttendedSession:
		c.AttendedSession = value
	case FlagAttendedIntro:
		c.AttendedIntro = value
	}
}
