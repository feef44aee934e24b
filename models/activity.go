package models

import "time"

type ActivityType string

const (
	ActivityCreate   ActivityType = "create"
	ActivityApprove  ActivityType = "approve"
	ActivityReject   ActivityType = "reject"
	ActivityResubmit ActivityType = "resubmit"
	ActivityDelete   ActivityType = "delete"
	ActivityPromote  ActivityType = "promote"
	ActivityReport   ActivityType = "report"
)

// MaxActivitiesPerUser caps the per-user history; older entries are
// pruned on insert.
const MaxActivitiesPerUser = 50

// Activity is an append-only, display-only event log entry. Nothing
// depends on it; recording failures are logged and ignored.
type Activity struct {
	ID        string       `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string       `json:"userId" gorm:"type:uuid;not null;index"`
	Type      ActivityType `json:"type" gorm:"type:varchar(20)"`
	Entity    string       `json:"entity" gorm:"type:varchar(20)"`
	EntityID  string       `json:"entityId"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (Activity) TableName() string {
	return "activities"
}
