// ABOUTME: User identity and profile types mirroring the TutorLink backend
// ABOUTME: Field names match the backend's JSON wire format exactly

package models

const (
	UserTypeStudent = "student"
	UserTypeTutor   = "tutor"
)

// UserProfile is the denormalized snapshot of an authenticated identity.
// The backend owns this data; the client only caches it.
type UserProfile struct {
	ID             string          `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone,omitempty"`
	UserType       string          `json:"user_type"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	IsOnline       bool            `json:"is_online,omitempty"`
	LastActivity   string          `json:"last_activity,omitempty"`
	StudentProfile *StudentProfile `json:"student_profile,omitempty"`
	TutorProfile   *TutorProfile   `json:"tutor_profile,omitempty"`
	Achievements   []string        `json:"achievements,omitempty"`
}

// FullName joins first and last name for display.
func (u *UserProfile) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// StudentProfile holds student-specific attributes.
type StudentProfile struct {
	School            string    `json:"school,omitempty"`
	Grade             string    `json:"grade,omitempty"`
	LearningGoals     string    `json:"learning_goals,omitempty"`
	PreferredSubjects []Subject `json:"preferred_subjects,omitempty"`
	Location          string    `json:"location,omitempty"`
	BudgetMin         float64   `json:"budget_min,omitempty"`
	BudgetMax         float64   `json:"budget_max,omitempty"`
	ProfileImage      string    `json:"profile_image,omitempty"`
}

// TutorProfile holds tutor-specific attributes.
type TutorProfile struct {
	Education     string         `json:"education,omitempty"`
	Bio           string         `json:"bio,omitempty"`
	Location      string         `json:"location,omitempty"`
	IsVerified    bool           `json:"is_verified,omitempty"`
	RatingAverage float64        `json:"rating_average,omitempty"`
	TotalReviews  int            `json:"total_reviews,omitempty"`
	ProfileImage  string         `json:"profile_image,omitempty"`
	Achievements  []string       `json:"achievements,omitempty"`
	ClassLevels   []string       `json:"class_levels,omitempty"`
	Subjects      []string       `json:"subjects,omitempty"`
	TutorSubjects []TutorSubject `json:"tutor_subjects,omitempty"`
	PriceMin      float64        `json:"price_min,omitempty"`
	PriceMax      float64        `json:"price_max,omitempty"`
}

// Subject is a teachable subject from the platform catalog.
type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TutorSubject links a tutor to a subject with level and price.
type TutorSubject struct {
	Subject Subject `json:"subject"`
	Level   string  `json:"level"`
	Price   float64 `json:"price"`
}
