package domain

import "time"

// Member is a registered requester.
type Member struct {
	UserID    string
	Office    string
	Address   string
	Role      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Registration answer fields.
const (
	FieldOffice  = "office"
	FieldAddress = "address"
	FieldRole    = "role"
	FieldName    = "name"
)

// MemberFromAnswers builds a member from registration answers.
func MemberFromAnswers(userID string, answers map[string]string) Member {
	return Member{
		UserID:  userID,
		Office:  answers[FieldOffice],
		Address: answers[FieldAddress],
		Role:    answers[FieldRole],
		Name:    answers[FieldName],
	}
}
