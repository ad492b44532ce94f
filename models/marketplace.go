// ABOUTME: Marketplace resource types: tutors, chats, reviews, platform metadata
// ABOUTME: Shapes mirror the backend serializers consumed by feature screens

package models

// TutorSummary is one entry in a tutor list or search result.
type TutorSummary struct {
	User          BasicUser      `json:"user"`
	Education     string         `json:"education,omitempty"`
	Bio           string         `json:"bio,omitempty"`
	Location      string         `json:"location,omitempty"`
	IsVerified    bool           `json:"is_verified,omitempty"`
	RatingAverage float64        `json:"rating_average,omitempty"`
	TotalReviews  int            `json:"total_reviews,omitempty"`
	ProfileImage  string         `json:"profile_image,omitempty"`
	TutorSubjects []TutorSubject `json:"tutor_subjects,omitempty"`
	PriceMin      float64        `json:"price_min,omitempty"`
	PriceMax      float64        `json:"price_max,omitempty"`
	IsLiked       bool           `json:"is_liked,omitempty"`
	IsSaved       bool           `json:"is_saved,omitempty"`
}

// BasicUser is the trimmed identity embedded in list payloads.
type BasicUser struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Name      string `json:"name,omitempty"`
	UserType  string `json:"user_type,omitempty"`
}

// TutorSearchParams filters GET /tutors/. Zero values are omitted from
// the query string.
type TutorSearchParams struct {
	Search   string
	Subject  string
	Location string
	PriceMin float64
	PriceMax float64
}

// ChatRoom is a conversation between a student and a tutor.
type ChatRoom struct {
	ID            string       `json:"id"`
	OtherUser     *BasicUser   `json:"other_user,omitempty"`
	CreatedAt     string       `json:"created_at,omitempty"`
	LastMessageAt string       `json:"last_message_at,omitempty"`
	LastMessage   *LastMessage `json:"last_message,omitempty"`
	UnreadCount   int          `json:"unread_count,omitempty"`
}

// LastMessage is the conversation preview embedded in a chat room.
type LastMessage struct {
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
	SenderID  string `json:"sender_id,omitempty"`
}

// Message is a single chat message.
type Message struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	MessageType string     `json:"message_type,omitempty"`
	IsRead      bool       `json:"is_read,omitempty"`
	CreatedAt   string     `json:"created_at,omitempty"`
	Sender      *BasicUser `json:"sender,omitempty"`
}

// Review is a student's rating of a tutor.
type Review struct {
	ID        string         `json:"id"`
	Student   *ReviewStudent `json:"student,omitempty"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
}

// ReviewStudent identifies the reviewing student.
type ReviewStudent struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	School string `json:"school,omitempty"`
}

// PlatformStats is the aggregate counters shown on the landing screen.
type PlatformStats struct {
	TotalTutors   int `json:"total_tutors"`
	TotalStudents int `json:"total_students"`
	TotalSubjects int `json:"total_subjects"`
	TotalReviews  int `json:"total_reviews"`
}

// UploadResponse is returned by the profile image upload endpoint.
type UploadResponse struct {
	ProfileImage string `json:"profile_image"`
}
