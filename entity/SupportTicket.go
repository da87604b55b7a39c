package entity

import (
	"gorm.io/gorm"
)

const (
	TicketOpen       = "OPEN"
	TicketInProgress = "IN_PROGRESS"
	TicketResolved   = "RESOLVED"
	TicketClosed     = "CLOSED"
)

type SupportTicket struct {
	gorm.Model
	Subject    string `gorm:"size:200;not null" json:"subject"`
	Message    string `gorm:"type:text;not null" json:"message"`
	Status     string `gorm:"size:16;not null;default:OPEN;index" json:"status"`
	AdminReply string `gorm:"type:text" json:"adminReply"`

	UserID    uint  `gorm:"index;not null" json:"userId"`
	User      User  `json:"-"`
	ProfileID *uint `gorm:"index" json:"profileId,omitempty"`
}
