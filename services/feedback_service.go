package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/pkg/metrics"
	"qrmenu/repository"
)

type FeedbackService struct {
	Repo     *repository.FeedbackRepository
	Profiles *ProfileService
	Public   *PublicMenuService
	Notifier Notifier
}

func NewFeedbackService(repo *repository.FeedbackRepository, profiles *ProfileService, public *PublicMenuService, notifier Notifier) *FeedbackService {
	return &FeedbackService{Repo: repo, Profiles: profiles, Public: public, Notifier: notifierOrNoop(notifier)}
}

type FeedbackInput struct {
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	CustomerName string `json:"customerName"`
}

const maxCommentLen = 2000

// DeriveFeedbackState คะแนนต่ำถูก flag ไว้ให้เจ้าของร้านดูก่อน
func DeriveFeedbackState(rating int) string {
	switch {
	case rating <= 2:
		return entity.FeedbackFlagged
	case rating == 3:
		return entity.FeedbackPending
	default:
		return entity.FeedbackApproved
	}
}

func validFeedbackState(s string) bool {
	switch s {
	case entity.FeedbackApproved, entity.FeedbackPending, entity.FeedbackFlagged, entity.FeedbackHidden:
		return true
	}
	return false
}

// Submit รับ feedback จากลูกค้าที่สแกน QR (ไม่ต้อง login)
func (s *FeedbackService) Submit(ctx context.Context, menuID uint, in FeedbackInput) (*entity.Feedback, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperr.Invalid("rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(comment) > maxCommentLen {
		return nil, apperr.Invalid(fmt.Sprintf("comment must be at most %d characters", maxCommentLen))
	}
	m, err := s.Public.EnsureVisible(ctx, menuID)
	if err != nil {
		return nil, err
	}

	mid := m.ID
	f := &entity.Feedback{
		Rating:       in.Rating,
		Comment:      comment,
		CustomerName: strings.TrimSpace(in.CustomerName),
		State:        DeriveFeedbackState(in.Rating),
		ProfileID:    m.ProfileID,
		MenuID:       &mid,
	}
	if err := s.Repo.Create(f); err != nil {
		return nil, err
	}
	metrics.RecordFeedback(f.State)
	s.Notifier.Publish(f.ProfileID, Event{Type: EventFeedbackCreated, ProfileID: f.ProfileID, Data: f})
	return f, nil
}

func (s *FeedbackService) List(a Actor, profileID uint, state string, page repository.Page) ([]entity.Feedback, int64, error) {
	if _, err := s.Profiles.Authorize(a, profileID); err != nil {
		return nil, 0, err
	}
	state = strings.ToUpper(strings.TrimSpace(state))
	if state != "" && !validFeedbackState(state) {
		return nil, 0, apperr.Invalid(fmt.Sprintf("unknown state %q", state))
	}
	return s.Repo.ListByProfile(profileID, state, page)
}

func (s *FeedbackService) UpdateState(a Actor, id uint, state string) (*entity.Feedback, error) {
	state = strings.ToUpper(strings.TrimSpace(state))
	if !validFeedbackState(state) {
		return nil, apperr.Invalid(fmt.Sprintf("unknown state %q", state))
	}
	f, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.Profiles.Authorize(a, f.ProfileID); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateState(f.ID, state); err != nil {
		return nil, err
	}
	f.State = state
	return f, nil
}
