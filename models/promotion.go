package models

import (
	"time"
)

// PromotionStatus définit les différents statuts possibles pour une promotion
type PromotionStatus string

const (
	PromotionPending PromotionStatus = "PENDING"
	PromotionActive  PromotionStatus = "ACTIVE"
	PromotionExpired PromotionStatus = "EXPIRED"
)

// Promotion is a paid, time-bounded featured placement on a catalog
// entry. It reaches ACTIVE only through payment settlement; expiry is
// derived from EndDate on read, the stored status may lag.
type Promotion struct {
	ID                    string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	GroupID               string          `json:"groupId" gorm:"type:uuid;not null;index"`
	UserID                string          `json:"userId" gorm:"type:uuid;not null;index"`
	PlanID                string          `json:"planId" gorm:"type:varchar(20);not null"`
	OrderRef              string          `json:"orderRef"`
	StartDate             time.Time       `json:"startDate"`
	EndDate               time.Time       `json:"endDate"`
	Status                PromotionStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	StripeSessionId       string          `json:"stripeSessionId"`
	StripePaymentIntentId string          `json:"stripePaymentIntentId"`
	Amount                int             `json:"amount"`
	Currency              string          `json:"currency"`
	PaidAt                *time.Time      `json:"paidAt,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

func (Promotion) TableName() string {
	return "promotions"
}

// IsActiveAt reports whether the promotion makes its group featured at
// the given instant. This predicate, not the stored status column, is
// authoritative for display.
func (p Promotion) IsActiveAt(now time.Time) bool {
	return p.Status == PromotionActive && !now.After(p.EndDate)
}

// EffectiveStatus overlays expiry on the stored status.
func (p Promotion) EffectiveStatus(now time.Time) PromotionStatus {
	if p.Status == PromotionActive && now.After(p.EndDate) {
		return PromotionExpired
	}
	return p.Status
}

// PromotionCreate model for starting a promotion checkout
type PromotionCreate struct {
	PlanID string `json:"planId" binding:"required" example:"3-month"`
}

// PromotionPlan is a fixed {duration, price} offer.
type PromotionPlan struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DurationDays int    `json:"durationDays"`
	Amount       int    `json:"amount"`
	Currency     string `json:"currency"`
}

// PromotionPlans is the fixed plan catalog. Amounts are in the smallest
// currency unit, as Stripe expects.
var PromotionPlans = []PromotionPlan{
	{ID: "weekly", Name: "1 Hafta", DurationDays: 7, Amount: 4900, Currency: "try"},
	{ID: "monthly", Name: "1 Ay", DurationDays: 30, Amount: 14900, Currency: "try"},
	{ID: "3-month", Name: "3 Ay", DurationDays: 90, Amount: 39900, Currency: "try"},
}

// GetPromotionPlan looks up a plan by id.
func GetPromotionPlan(id string) (PromotionPlan, bool) {
	for _, p := range PromotionPlans {
		if p.ID == id {
			return p, true
		}
	}
	return PromotionPlan{}, false
}

// PlanEndDate computes the promotion end date with calendar-day
// addition, so a 90 day plan ends on the same wall-clock time 90
// calendar days later regardless of DST or leap days.
func PlanEndDate(start time.Time, plan PromotionPlan) time.Time {
	return start.AddDate(0, 0, plan.DurationDays)
}
