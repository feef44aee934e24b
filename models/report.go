package models

import "time"

type ReportStatus string

const (
	ReportPending  ReportStatus = "PENDING"
	ReportResolved ReportStatus = "RESOLVED"
)

// GroupReport is a user report against a listed group.
type GroupReport struct {
	ID         string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	GroupID    string       `json:"groupId" gorm:"type:uuid;not null;index"`
	ReportedBy string       `json:"reportedBy" gorm:"column:reported_by"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type GroupReportCreate struct {
	Reason string `json:"reason" binding:"required" example:"Spam içerik"`
}

func (GroupReport) TableName() string {
	return "group_reports"
}
