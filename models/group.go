package models

import (
	"time"
)

// Group is a public catalog entry. It only exists once a submission
// reached the APPROVED status; UserID is kept for provenance.
type Group struct {
	ID               string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SubmissionID     string    `json:"submissionId" gorm:"type:uuid;not null;uniqueIndex"`
	UserID           string    `json:"userId" gorm:"type:uuid;not null;index"`
	GroupName        string    `json:"groupName"`
	GroupDescription string    `json:"groupDescription"`
	GroupUsername    string    `json:"groupUsername" gorm:"uniqueIndex"`
	GroupImage       string    `json:"groupImage"`
	Category         string    `json:"category" gorm:"type:varchar(50);index"`
	Tags             []string  `json:"tags" gorm:"serializer:json"`
	Members          int       `json:"members"`
	Link             string    `json:"link"`
	Verified         bool      `json:"verified"`
	Approved         bool      `json:"approved" gorm:"default:true"`
	Featured         bool      `json:"featured" gorm:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupFromSubmission builds the catalog entry for an approved submission.
func GroupFromSubmission(s Submission) Group {
	return Group{
		SubmissionID:     s.ID,
		UserID:           s.UserID,
		GroupName:        s.GroupName,
		GroupDescription: s.GroupDescription,
		GroupUsername:    s.GroupUsername,
		GroupImage:       s.GroupImage,
		Category:         s.Category,
		Tags:             s.Tags,
		Members:          s.Members,
		Link:             s.Link,
		Verified:         s.Verified,
		Approved:         true,
	}
}
