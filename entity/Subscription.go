package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	PlanFree     = "FREE"
	PlanStandard = "STANDARD"
	PlanCustom   = "CUSTOM"
)

const (
	SubscriptionActive    = "ACTIVE"
	SubscriptionInactive  = "INACTIVE"
	SubscriptionCancelled = "CANCELLED"
	SubscriptionExpired   = "EXPIRED"
)

type Subscription struct {
	gorm.Model
	Plan        string     `gorm:"size:16;not null;default:FREE" json:"plan"`
	Status      string     `gorm:"size:16;not null;default:ACTIVE;index" json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	ExpiresAt   *time.Time `gorm:"index" json:"expiresAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	ProfileID uint     `gorm:"uniqueIndex;not null" json:"profileId"`
	Profile   *Profile `json:"-"`

	Payments []Payment `json:"-"`
}

// IsEffective บอกว่าแผนที่จ่ายไว้ยังใช้ได้อยู่หรือไม่ ณ เวลา now
func (s *Subscription) IsEffective(now time.Time) bool {
	switch s.Status {
	case SubscriptionActive, SubscriptionCancelled:
	default:
		return false
	}
	if s.ExpiresAt == nil {
		// FREE ไม่มีวันหมดอายุ; CANCELLED ที่ไม่มีวันหมดอายุถือว่าจบแล้ว
		return s.Status == SubscriptionActive
	}
	return now.Before(*s.ExpiresAt)
}

// EffectivePlan แผนที่ใช้คำนวณ limit จริง
func (s *Subscription) EffectivePlan(now time.Time) string {
	if s.IsEffective(now) {
		return s.Plan
	}
	return PlanFree
}
