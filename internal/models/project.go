package models

import "time"

const (
	ProjectOpen   = "open"
	ProjectClosed = "closed"
)

const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

type Project struct {
	ID          string       `bson:"_id" json:"id"`
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description" json:"description"`
	Deadline    time.Time    `bson:"deadline" json:"deadline"`
	Status      string       `bson:"status" json:"status"`
	Applicants  []string     `bson:"applicants" json:"applicants"`
	Submissions []Submission `bson:"submissions" json:"submissions"`
	// Version is bumped on every write; concurrent writers lose instead of
	// silently clobbering each other.
	Version int64 `bson:"version" json:"-"`
}

type Submission struct {
	UserID      string       `bson:"user_id" json:"userId"`
	ProjectID   string       `bson:"project_id" json:"projectId"`
	Description string       `bson:"description" json:"description"`
	Links       []string     `bson:"links" json:"links"`
	SubmittedAt time.Time    `bson:"submitted_at" json:"submittedAt"`
	Status      string       `bson:"status" json:"status"`
	Feedback    string       `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Attachments []Attachment `bson:"attachments,omitempty" json:"attachments,omitempty"`
}

// Attachment is a file stored in object storage alongside a submission. The
// object key is never exposed directly; admins fetch presigned URLs instead.
type Attachment struct {
	Name       string    `bson:"name" json:"name"`
	Object     string    `bson:"object" json:"-"`
	Size       int64     `bson:"size" json:"size"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}

// HasApplicant reports whether the user already appears in the applicant list.
func (p Project) HasApplicant(userID string) bool {
	for _, id := range p.Applicants {
		if id == userID {
			return true
		}
	}
	return false
}

// SubmissionIndex returns the index of the user's submission, or -1.
func (p Project) SubmissionIndex(userID string) int {
	for i, s := range p.Submissions {
		if s.UserID == userID {
			return i
		}
	}
	return -1
}
