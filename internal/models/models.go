package models

import (
	"time"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleCompany   Role = "company"
)

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewing   ApplicationStatus = "reviewing"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusHired       ApplicationStatus = "hired"
)

// Terminal reports whether no further status transition is possible.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusRejected || s == StatusHired
}

type Sender string

const (
	SenderCandidate Sender = "candidate"
	SenderCompany   Sender = "company"
	// SenderSystem marks AI-interviewer turns and status-change notices.
	// System messages are never authored by a human client.
	SenderSystem Sender = "system"
)

type User struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company,omitempty"`
	Industry string `json:"industry,omitempty"`
	Location string `json:"location,omitempty"`
}

type Salary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// ResponseType is the answer format an employer expects for a screening question.
type ResponseType string

const (
	ResponseText      ResponseType = "text"
	ResponseMultiline ResponseType = "multiline"
	ResponseChoice    ResponseType = "choice"
)

type Question struct {
	Text         string       `json:"text"`
	ResponseType ResponseType `json:"expectedResponseType"`
	Choices      []string     `json:"choices,omitempty"`
	Weight       int          `json:"weight"`
	Required     bool         `json:"required"`
}

type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
}

type JobPosting struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Company            *Company   `json:"company,omitempty"`
	Description        string     `json:"description"`
	Location           string     `json:"location"`
	Type               string     `json:"type"`
	WorkType           string     `json:"workType,omitempty"`
	Industry           string     `json:"industry,omitempty"`
	Experience         string     `json:"experience"`
	RequiredSkills     []string   `json:"requiredSkills"`
	Salary             *Salary    `json:"salary,omitempty"`
	ScreeningQuestions []Question `json:"screeningQuestions,omitempty"`
	ShortlistCount     int        `json:"shortlistCount"`
	IsActive           bool       `json:"isActive"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`

	// AIScore is the backend-computed match score, present only on
	// responses from the matching endpoint.
	AIScore *int `json:"aiScore,omitempty"`
}

type Message struct {
	ID        string    `json:"id,omitempty"`
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	// Local marks an optimistic entry not yet confirmed by the server.
	Local bool `json:"-"`
}

type ScreeningResponse struct {
	Question      string `json:"question"`
	Response      string `json:"response"`
	LLMEvaluation string `json:"llmEvaluation,omitempty"`
}

type Application struct {
	ID                 string              `json:"id"`
	Job                *JobPosting         `json:"job,omitempty"`
	Candidate          *User               `json:"candidate,omitempty"`
	Resume             *Resume             `json:"resume,omitempty"`
	Status             ApplicationStatus   `json:"status"`
	MatchScore         int                 `json:"matchScore"`
	ScreeningResponses []ScreeningResponse `json:"screeningResponses,omitempty"`
	Messages           []Message           `json:"messages,omitempty"`
	CoverLetter        string              `json:"coverLetter,omitempty"`
	Shortlisted        bool                `json:"shortlisted,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
}

type Resume struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FileURL   string    `json:"fileUrl"`
	Skills    []string  `json:"skills,omitempty"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

type Conversation struct {
	ID           string         `json:"id"`
	Participants []User         `json:"participants"`
	LastMessage  *Message       `json:"lastMessage,omitempty"`
	UnreadCount  map[string]int `json:"unreadCount,omitempty"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
