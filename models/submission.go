package models

import (
	"time"
)

// SubmissionStatusType définit les différents statuts possibles pour une soumission de groupe
type SubmissionStatusType string

const (
	SubmissionStatusPending  SubmissionStatusType = "PENDING"
	SubmissionStatusApproved SubmissionStatusType = "APPROVED"
	SubmissionStatusRejected SubmissionStatusType = "REJECTED"
)

// Submission represents a group submitted by a user, awaiting moderation
type Submission struct {
	ID               string               `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID           string               `json:"userId" gorm:"type:uuid;not null;index"`
	GroupName        string               `json:"groupName"`
	GroupDescription string               `json:"groupDescription"`
	GroupUsername    string               `json:"groupUsername" gorm:"index;not null"`
	GroupImage       string               `json:"groupImage"`
	Category         string               `json:"category" gorm:"type:varchar(50);not null"`
	Tags             []string             `json:"tags" gorm:"serializer:json"`
	Members          int                  `json:"members"`
	Link             string               `json:"link"`
	Verified         bool                 `json:"verified"`
	Status           SubmissionStatusType `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	SubmittedAt      time.Time            `json:"submittedAt"`
	ReviewedAt       *time.Time           `json:"reviewedAt,omitempty"`
	ReviewedBy       string               `json:"reviewedBy,omitempty"`
	RejectionReason  string               `json:"rejectionReason,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SubmissionCreate model for submitting a group
// @Description modèle de soumission d'un groupe au répertoire
type SubmissionCreate struct {
	GroupUsername string   `json:"groupUsername" binding:"required" example:"devtr"`
	Category      string   `json:"category" binding:"required" example:"Yazılım"`
	Tags          []string `json:"tags" example:"golang,backend"`
}

// SubmissionReject model for rejecting a submission
type SubmissionReject struct {
	Reason string `json:"reason" binding:"required" example:"Duplicate listing"`
}

// MergeTags merges the tags fetched from the group metadata with the
// tags chosen by the owner. Exact string match, snapshot tags first,
// first occurrence wins.
func MergeTags(fetched []string, extra []string) []string {
	merged := make([]string, 0, len(fetched)+len(extra))
	seen := make(map[string]bool, len(fetched)+len(extra))
	for _, t := range fetched {
		if !seen[t] {
			seen[t] = true
			merged = append(merged, t)
		}
	}
	for _, t := range extra {
		if !seen[t] {
			seen[t] = true
			merged = append(merged, t)
		}
	}
	return merged
}
