// Package candidate holds the profile record assembled during one screening
// session and helpers for reasoning about its completeness.
package candidate

import "strings"

// Field identifies one of the required candidate profile fields.
type Field string

const (
	FieldFullName          Field = "full_name"
	FieldEmail             Field = "email"
	FieldPhone             Field = "phone"
	FieldYearsOfExperience Field = "years_of_experience"
	FieldDesiredPositions  Field = "desired_positions"
	FieldCurrentLocation   Field = "current_location"
	FieldTechStack         Field = "tech_stack"
)

// RequiredFields returns the required fields in collection order.
func RequiredFields() []Field {
	return []Field{
		FieldFullName,
		FieldEmail,
		FieldPhone,
		FieldYearsOfExperience,
		FieldDesiredPositions,
		FieldCurrentLocation,
		FieldTechStack,
	}
}

// DisplayName returns the human-facing label for a field, e.g. "Full Name".
func DisplayName(f Field) string {
	words := strings.Split(string(f), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Record is the candidate profile for a single screening session. Public
// fields follow first-write-wins: once set, extraction never changes them.
// The technical-phase fields are owned by the turn controller.
type Record struct {
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	YearsOfExperience string `json:"years_of_experience"`
	DesiredPositions  string `json:"desired_positions"`
	CurrentLocation   string `json:"current_location"`
	TechStack         string `json:"tech_stack"`

	TechPhaseStarted   bool `json:"_technical_questions_started"`
	TechQuestionsAsked int  `json:"_tech_question_count"`
}

// Get returns the current value of a required field.
func (r *Record) Get(f Field) string {
	switch f {
	case FieldFullName:
		return r.FullName
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldYearsOfExperience:
		return r.YearsOfExperience
	case FieldDesiredPositions:
		return r.DesiredPositions
	case FieldCurrentLocation:
		return r.CurrentLocation
	case FieldTechStack:
		return r.TechStack
	}
	return ""
}

// Set assigns a required field only when it is still empty.
func (r *Record) Set(f Field, value string) {
	if r.Get(f) != "" || strings.TrimSpace(value) == "" {
		return
	}
	switch f {
	case FieldFullName:
		r.FullName = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	case FieldYearsOfExperience:
		r.YearsOfExperience = value
	case FieldDesiredPositions:
		r.DesiredPositions = value
	case FieldCurrentLocation:
		r.CurrentLocation = value
	case FieldTechStack:
		r.TechStack = value
	}
}

// Missing returns display names of still-empty required fields in order.
func (r *Record) Missing() []string {
	missing := make([]string, 0, 7)
	for _, f := range RequiredFields() {
		if r.Get(f) == "" {
			missing = append(missing, DisplayName(f))
		}
	}
	return missing
}

// Complete reports whether all required fields are populated.
func (r *Record) Complete() bool {
	return len(r.Missing()) == 0
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() Record {
	return *r
}

// NameOrFallback returns the candidate's name, or the given fallback when the
// name is still unknown.
func (r *Record) NameOrFallback(fallback string) string {
	if strings.TrimSpace(r.FullName) == "" {
		return fallback
	}
	return r.FullName
}

// AnonymizedSummary returns a copy with contact details partially masked,
// safe for logging and display.
func (r *Record) AnonymizedSummary() Record {
	out := r.Clone()
	out.Email = anonymizeEmail(r.Email)
	out.Phone = anonymizePhone(r.Phone)
	return out
}

func anonymizeEmail(email string) string {
	at := strings.Index(email, "@")
	if email == "" || at < 0 {
		return email
	}

	local, domain := email[:at], email[at+1:]
	if local == "" {
		return "***@" + domain
	}
	if len(local) <= 2 {
		return local[:1] + "***@" + domain
	}
	return local[:1] + "***" + local[len(local)-1:] + "@" + domain
}

func anonymizePhone(phone string) string {
	if phone == "" {
		return phone
	}

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()
	if len(cleaned) >= 4 {
		return "***-***-" + cleaned[len(cleaned)-4:]
	}
	return "***"
}
