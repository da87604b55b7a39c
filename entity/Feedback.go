package entity

import (
	"gorm.io/gorm"
)

const (
	FeedbackApproved = "APPROVED"
	FeedbackPending  = "PENDING"
	FeedbackFlagged  = "FLAGGED"
	FeedbackHidden   = "HIDDEN"
)

type Feedback struct {
	gorm.Model
	Rating       int    `gorm:"not null" json:"rating"`
	Comment      string `gorm:"type:text" json:"comment"`
	CustomerName string `gorm:"size:120" json:"customerName"`
	State        string `gorm:"size:16;not null;index" json:"state"`

	ProfileID uint  `gorm:"index;not null" json:"profileId"`
	MenuID    *uint `gorm:"index" json:"menuId,omitempty"`
}
