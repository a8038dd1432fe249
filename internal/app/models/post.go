package models

// PostType classifies a post within its cohort feed.
type PostType string

const (
	PostTypeSprintUpdate   PostType = "SPRINT_UPDATE"
	PostTypeOpenRole       PostType = "OPEN_ROLE"
	PostTypeDelivery       PostType = "DELIVERY"
	PostTypeIdeaSubmission PostType = "IDEA_SUBMISSION"
)

// PostStatus is the post lifecycle state. The only transition is
// PENDING -> VERIFIED; a verified post never reverts.
type PostStatus string

const (
	PostStatusPending  PostStatus = "PENDING"
	PostStatusVerified PostStatus = "VERIFIED"
)

// MVPStatus is the build-plan state attached to a verified idea.
type MVPStatus string

const (
	MVPStatusReady      MVPStatus = "READY"
	MVPStatusInProgress MVPStatus = "IN_PROGRESS"
)

// MVPData is the structured build plan synthesized when an idea
// submission is verified. Present iff the post is a VERIFIED
// IDEA_SUBMISSION.
type MVPData struct {
	Description string    `json:"description"`
	TechStack   []string  `json:"techStack"`
	DocLink     string    `json:"docLink"`
	Status      MVPStatus `json:"status"`
}

// Comment is immutable once appended; insertion order is display order.
type Comment struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// Post is a feed entry. AuthorName and AuthorRole are snapshots taken at
// creation time; later profile renames do not rewrite history.
type Post struct {
	ID            string     `json:"id"`
	InstitutionID string     `json:"institutionId"`
	AuthorID      string     `json:"authorId"`
	AuthorName    string     `json:"authorName"`
	AuthorRole    Role       `json:"authorRole"`
	Title         string     `json:"title,omitempty"`
	Content       string     `json:"content"`
	Image         string     `json:"image,omitempty"`
	Likes         int        `json:"likes"`
	Comments      []Comment  `json:"comments"`
	Status        PostStatus `json:"status"`
	Type          PostType   `json:"type"`
	Timestamp     int64      `json:"timestamp"`
	Company       string     `json:"company,omitempty"`
	JobLink       string     `json:"jobLink,omitempty"`

	// Idea-submission workflow fields; meaningless for other types.
	MVP        *MVPData `json:"mvp,omitempty"`
	Applicants []string `json:"applicants,omitempty"`
	Team       []string `json:"team,omitempty"`
}

// OnTeam reports whether the given user is on the post's team.
func (p *Post) OnTeam(uid string) bool {
	for _, member := range p.Team {
		if member == uid {
			return true
		}
	}
	return false
}

// HasApplicant reports whether the given user has already applied.
func (p *Post) HasApplicant(uid string) bool {
	for _, applicant := range p.Applicants {
		if applicant == uid {
			return true
		}
	}
	return false
}
