package dto

import "github.com/squadran/buildforge/internal/app/models"

// CreatePostRequest is a post draft. The server assigns id, timestamp,
// status and the engagement fields.
type CreatePostRequest struct {
	InstitutionID string          `json:"institutionId"`
	AuthorID      string          `json:"authorId"`
	AuthorName    string          `json:"authorName"`
	AuthorRole    models.Role     `json:"authorRole"`
	Type          models.PostType `json:"type" binding:"required"`
	Title         string          `json:"title"`
	Content       string          `json:"content" binding:"required"`
	Image         string          `json:"image"`
	Company       string          `json:"company"`
	JobLink       string          `json:"jobLink"`
}

// AddCommentRequest appends a comment to a post. The commenting user is
// taken from the session.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// AssignDeveloperRequest puts a developer on an idea's team.
type AssignDeveloperRequest struct {
	UserID string `json:"userId" binding:"required"`
}
