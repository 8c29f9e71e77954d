package models

// StatusPending is the status every new submission starts with.
const StatusPending = "Pending"

// Submission is a user-provided entry awaiting manual review. Picture holds
// the stored upload's filename, or nil when nothing was attached.
type Submission struct {
	ID       string  `json:"_id,omitempty" bson:"-"`
	Email    string  `json:"email" bson:"email"`
	Username string  `json:"username" bson:"username"`
	Comment  string  `json:"comment" bson:"comment"`
	Picture  *string `json:"picture" bson:"picture"`
	Status   string  `json:"status" bson:"status"`
}

// NewSubmission builds a pending submission.
func NewSubmission(email, username, comment string, picture *string) *Submission {
	return &Submission{
		Email:    email,
		Username: username,
		Comment:  comment,
		Picture:  picture,
		Status:   StatusPending,
	}
}
