package services

import (
	"fmt"
	"strings"

	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/repository"
)

type TicketService struct {
	Repo     *repository.TicketRepository
	Profiles *ProfileService
	Notifier Notifier
}

func NewTicketService(repo *repository.TicketRepository, profiles *ProfileService, notifier Notifier) *TicketService {
	return &TicketService{Repo: repo, Profiles: profiles, Notifier: notifierOrNoop(notifier)}
}

type TicketInput struct {
	Subject   string `json:"subject" binding:"required"`
	Message   string `json:"message" binding:"required"`
	ProfileID *uint  `json:"profileId"`
}

type TicketUpdate struct {
	Status     *string `json:"status"`
	AdminReply *string `json:"adminReply"`
}

func validTicketStatus(s string) bool {
	switch s {
	case entity.TicketOpen, entity.TicketInProgress, entity.TicketResolved, entity.TicketClosed:
		return true
	}
	return false
}

func (s *TicketService) Create(a Actor, in TicketInput) (*entity.SupportTicket, error) {
	subject := strings.TrimSpace(in.Subject)
	message := strings.TrimSpace(in.Message)
	if subject == "" || message == "" {
		return nil, apperr.Invalid("subject and message are required")
	}
	// ticket ผูกกับร้านได้เฉพาะร้านของตัวเอง
	if in.ProfileID != nil {
		if _, err := s.Profiles.Authorize(a, *in.ProfileID); err != nil {
			return nil, err
		}
	}
	t := &entity.SupportTicket{
		Subject:   subject,
		Message:   message,
		Status:    entity.TicketOpen,
		UserID:    a.UserID,
		ProfileID: in.ProfileID,
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketService) ListMine(a Actor, status string, page repository.Page) ([]entity.SupportTicket, int64, error) {
	return s.list(a.UserID, status, page)
}

func (s *TicketService) AdminList(status string, page repository.Page) ([]entity.SupportTicket, int64, error) {
	return s.list(0, status, page)
}

func (s *TicketService) list(userID uint, status string, page repository.Page) ([]entity.SupportTicket, int64, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "" && !validTicketStatus(status) {
		return nil, 0, apperr.Invalid(fmt.Sprintf("unknown status %q", status))
	}
	return s.Repo.List(userID, status, page)
}

func (s *TicketService) AdminUpdate(id uint, in TicketUpdate) (*entity.SupportTicket, error) {
	t, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if in.Status != nil {
		st := strings.ToUpper(strings.TrimSpace(*in.Status))
		if !validTicketStatus(st) {
			return nil, apperr.Invalid(fmt.Sprintf("unknown status %q", *in.Status))
		}
		t.Status = st
	}
	if in.AdminReply != nil {
		t.AdminReply = strings.TrimSpace(*in.AdminReply)
		// ตอบแล้วแต่ยังไม่ได้เปลี่ยนสถานะ -> IN_PROGRESS
		if in.Status == nil && t.Status == entity.TicketOpen && t.AdminReply != "" {
			t.Status = entity.TicketInProgress
		}
	}
	if err := s.Repo.Save(t); err != nil {
		return nil, err
	}
	if t.ProfileID != nil {
		s.Notifier.Publish(*t.ProfileID, Event{Type: EventTicketUpdated, ProfileID: *t.ProfileID, Data: t})
	}
	return t, nil
}
