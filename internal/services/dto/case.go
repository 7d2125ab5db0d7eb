package dto

import (
	"time"

	"findthem_backend/internal/models"
)

// SubmitCaseRequest arrives as a multipart form; latitude, longitude and
// date come in as strings and are parsed by the lifecycle engine so a bad
// number is reported as a validation failure naming the field.
type SubmitCaseRequest struct {
	Name        string `form:"name" validate:"required,max=200"`
	Status      string `form:"status" validate:"required,max=40"`
	Date        string `form:"date" validate:"required"`
	LastSeen    string `form:"lastSeen" validate:"required,max=500"`
	Latitude    string `form:"latitude" validate:"required"`
	Longitude   string `form:"longitude" validate:"required"`
	Description string `form:"description"`

	// PhotoRef is filled by the boundary after the upload is stored.
	PhotoRef string `form:"-"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=40"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type CommentResponse struct {
	UserID   *string   `json:"userId"`
	Username string    `json:"username,omitempty"`
	Text     string    `json:"text"`
	Date     time.Time `json:"date"`
}

type CaseResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Status      models.CaseStatus `json:"status"`
	Date        time.Time         `json:"date"`
	LastSeen    string            `json:"lastSeen"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Description string            `json:"description"`
	PhotoURL    string            `json:"photoUrl"`
	Pending     bool              `json:"pending"`
	CreatedAt   time.Time         `json:"createdAt"`
	Comments    []CommentResponse `json:"comments"`
}

// NewCaseResponse maps a case to its wire form. The comment author's
// username is resolved from the joined account here, at read time.
func NewCaseResponse(c *models.Case) *CaseResponse {
	comments := make([]CommentResponse, 0, len(c.Comments))
	for _, comment := range c.Comments {
		cr := CommentResponse{
			UserID: comment.UserID,
			Text:   comment.Text,
			Date:   comment.CreatedAt,
		}
		if comment.User != nil {
			cr.Username = comment.User.Username
		}
		comments = append(comments, cr)
	}

	return &CaseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Status:      c.Status,
		Date:        c.Date,
		LastSeen:    c.LastSeen,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Description: c.Description,
		PhotoURL:    c.PhotoURL,
		Pending:     c.Pending,
		CreatedAt:   c.CreatedAt,
		Comments:    comments,
	}
}

func NewCaseListResponse(cases []models.Case) []*CaseResponse {
	out := make([]*CaseResponse, 0, len(cases))
	for i := range cases {
		out = append(out, NewCaseResponse(&cases[i]))
	}
	return out
}
