package services

import (
	"fmt"
	"strings"
	"time"

	"qrmenu/configs"
	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/repository"
)

type PaymentService struct {
	Repo          *repository.PaymentRepository
	Subscriptions *SubscriptionService
}

func NewPaymentService(repo *repository.PaymentRepository, subs *SubscriptionService) *PaymentService {
	return &PaymentService{Repo: repo, Subscriptions: subs}
}

type PaymentInput struct {
	SubscriptionID uint   `json:"subscriptionId" binding:"required"`
	Plan           string `json:"plan" binding:"required"`
	Amount         *int64 `json:"amount"`
	Currency       string `json:"currency"`
	Method         string `json:"method"`
	Status         string `json:"status"`
	Reference      string `json:"reference"`
}

func validPaymentStatus(s string) bool {
	switch s {
	case entity.PaymentPending, entity.PaymentPaid, entity.PaymentFailed, entity.PaymentRefunded:
		return true
	}
	return false
}

func validPaymentMethod(s string) bool {
	switch s {
	case entity.MethodManual, entity.MethodBankTransfer, entity.MethodCard:
		return true
	}
	return false
}

func (s *PaymentService) List(status string, profileID uint, page repository.Page) ([]repository.PaymentRow, int64, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "" && !validPaymentStatus(status) {
		return nil, 0, apperr.Invalid(fmt.Sprintf("unknown status %q", status))
	}
	return s.Repo.List(status, profileID, page)
}

// Record บันทึกการชำระเงินที่ admin ยืนยันเอง
func (s *PaymentService) Record(in PaymentInput) (*entity.Payment, error) {
	plans := s.Subscriptions.Plans
	code := strings.ToUpper(strings.TrimSpace(in.Plan))
	if !plans.Has(code) || code == entity.PlanFree {
		return nil, apperr.Invalid(fmt.Sprintf("unknown paid plan %q", in.Plan))
	}
	plan := plans.Get(code)

	method := strings.ToUpper(strings.TrimSpace(in.Method))
	if method == "" {
		method = entity.MethodManual
	}
	if !validPaymentMethod(method) {
		return nil, apperr.Invalid(fmt.Sprintf("unknown method %q", in.Method))
	}
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if status == "" {
		status = entity.PaymentPending
	}
	if !validPaymentStatus(status) {
		return nil, apperr.Invalid(fmt.Sprintf("unknown status %q", in.Status))
	}
	amount := plan.Price
	if in.Amount != nil {
		if *in.Amount < 0 {
			return nil, apperr.Invalid("amount must not be negative")
		}
		amount = *in.Amount
	}

	sub, err := s.Subscriptions.Repo.FindByID(in.SubscriptionID)
	if err != nil {
		return nil, err
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "USD"
		if sub.Profile != nil && sub.Profile.Currency != "" {
			currency = sub.Profile.Currency
		}
	}

	p := &entity.Payment{
		Plan:           code,
		Amount:         amount,
		Currency:       currency,
		Method:         method,
		Status:         entity.PaymentPending,
		Reference:      strings.TrimSpace(in.Reference),
		SubscriptionID: sub.ID,
		ProfileID:      sub.ProfileID,
	}
	// ตรวจก่อนเขียน ไม่ให้เหลือแถว PENDING ค้างเมื่อ status ใช้ไม่ได้
	if err := checkTransition(p.Status, status); err != nil {
		return nil, err
	}
	if status == entity.PaymentPaid {
		// insert payment + ต่ออายุ subscription ใน transaction เดียว
		return s.activate(p)
	}
	p.Status = status
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaymentService) UpdateStatus(id uint, status string) (*entity.Payment, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !validPaymentStatus(status) {
		return nil, apperr.Invalid(fmt.Sprintf("unknown status %q", status))
	}
	p, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p.Status == status {
		return p, nil
	}
	return s.transition(p, status)
}

// checkTransition: PAID ได้ครั้งเดียว, REFUNDED ได้จาก PAID เท่านั้น
func checkTransition(from, to string) error {
	switch to {
	case entity.PaymentPaid:
		if from != entity.PaymentPending && from != entity.PaymentFailed {
			return apperr.Conflict(fmt.Sprintf("cannot mark a %s payment as PAID", from))
		}
	case entity.PaymentRefunded:
		if from != entity.PaymentPaid {
			return apperr.Conflict("only PAID payments can be refunded")
		}
	case entity.PaymentPending, entity.PaymentFailed:
		if from == entity.PaymentPaid || from == entity.PaymentRefunded {
			return apperr.Conflict(fmt.Sprintf("cannot move a %s payment back to %s", from, to))
		}
	}
	return nil
}

func (s *PaymentService) transition(p *entity.Payment, status string) (*entity.Payment, error) {
	if err := checkTransition(p.Status, status); err != nil {
		return nil, err
	}
	if status == entity.PaymentPaid {
		return s.activate(p)
	}
	p.Status = status
	if err := s.Repo.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// activate เปิดแผนและต่ออายุตาม ExtendExpiry (payment ใหม่จะถูก insert ใน tx เดียวกัน)
func (s *PaymentService) activate(p *entity.Payment) (*entity.Payment, error) {
	sub, err := s.Subscriptions.Repo.FindByID(p.SubscriptionID)
	if err != nil {
		return nil, err
	}
	t := now()
	plan := s.Subscriptions.Plans.Get(p.Plan)

	sub.ExpiresAt = ExtendExpiry(sub, p.Plan, plan, t)
	sub.Plan = p.Plan
	sub.Status = entity.SubscriptionActive
	sub.CancelledAt = nil
	if sub.StartedAt.IsZero() {
		sub.StartedAt = t
	}

	p.Status = entity.PaymentPaid
	p.PaidAt = &t
	if err := s.Repo.MarkPaid(p, sub); err != nil {
		return nil, err
	}
	s.Subscriptions.Cache.InvalidateProfile(sub.ProfileID)
	s.Subscriptions.publish(sub)
	return p, nil
}

// ExtendExpiry ต่อจากวันหมดอายุเดิมเฉพาะเมื่อยังไม่หมดและเป็นแผนเดียวกัน
func ExtendExpiry(sub *entity.Subscription, code string, plan configs.Plan, at time.Time) *time.Time {
	if plan.PeriodDays <= 0 {
		return nil
	}
	from := at
	if sub.ExpiresAt != nil && sub.ExpiresAt.After(at) && sub.Plan == code {
		from = *sub.ExpiresAt
	}
	exp := from.AddDate(0, 0, plan.PeriodDays)
	return &exp
}
