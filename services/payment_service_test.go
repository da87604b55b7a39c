package services

import (
	"testing"
	"time"

	"qrmenu/configs"
	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendExpiry(t *testing.T) {
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	plan := configs.Plan{Code: entity.PlanStandard, PeriodDays: 30}

	// ยังไม่หมดอายุ ต่อจากวันเดิม
	later := at.AddDate(0, 0, 10)
	got := ExtendExpiry(&entity.Subscription{Plan: entity.PlanStandard, ExpiresAt: &later}, entity.PlanStandard, plan, at)
	require.NotNil(t, got)
	assert.Equal(t, at.AddDate(0, 0, 40), *got)

	// หมดแล้ว เริ่มนับจากวันนี้
	earlier := at.AddDate(0, 0, -10)
	got = ExtendExpiry(&entity.Subscription{Plan: entity.PlanStandard, ExpiresAt: &earlier}, entity.PlanStandard, plan, at)
	assert.Equal(t, at.AddDate(0, 0, 30), *got)

	got = ExtendExpiry(&entity.Subscription{Plan: entity.PlanFree}, entity.PlanStandard, plan, at)
	assert.Equal(t, at.AddDate(0, 0, 30), *got)

	assert.Nil(t, ExtendExpiry(&entity.Subscription{}, entity.PlanFree, configs.Plan{}, at))
}

func TestPaidPaymentActivatesSubscription(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	setNow(t, at)

	sub, err := f.subs.Repo.FindByProfile(f.profile.ID)
	require.NoError(t, err)

	_, err = f.payments.Record(PaymentInput{SubscriptionID: sub.ID, Plan: "FREE"})
	assert.ErrorIs(t, err, apperr.ErrInvalid)
	_, err = f.payments.Record(PaymentInput{SubscriptionID: sub.ID, Plan: "STANDARD", Method: "CASH"})
	assert.ErrorIs(t, err, apperr.ErrInvalid)

	p, err := f.payments.Record(PaymentInput{SubscriptionID: sub.ID, Plan: "standard", Status: "PAID", Reference: "INV-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, p.Status)
	assert.Equal(t, int64(1900), p.Amount)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, entity.MethodManual, p.Method)
	require.NotNil(t, p.PaidAt)

	sub, err = f.subs.Repo.FindByProfile(f.profile.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanStandard, sub.Plan)
	assert.Equal(t, entity.SubscriptionActive, sub.Status)
	require.NotNil(t, sub.ExpiresAt)
	assert.WithinDuration(t, at.AddDate(0, 0, 30), *sub.ExpiresAt, time.Second)

	// จ่ายรอบถัดไปต่อจากวันหมดอายุเดิม
	pending, err := f.payments.Record(PaymentInput{SubscriptionID: sub.ID, Plan: "STANDARD", Method: "bank_transfer"})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, pending.Status)

	paid, err := f.payments.UpdateStatus(pending.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, paid.Status)

	sub, err = f.subs.Repo.FindByProfile(f.profile.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, at.AddDate(0, 0, 60), *sub.ExpiresAt, time.Second)

	rows, total, err := f.payments.List("PAID", 0, repository.NewPage(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Noodle House", rows[0].ProfileName)
}

func TestPaymentTransitions(t *testing.T) {
	f := newFixture(t)
	sub, err := f.subs.Repo.FindByProfile(f.profile.ID)
	require.NoError(t, err)

	p, err := f.payments.Record(PaymentInput{SubscriptionID: sub.ID, Plan: "STANDARD", Amount: i64(1500)})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), p.Amount)

	_, err = f.payments.UpdateStatus(p.ID, entity.PaymentRefunded)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = f.payments.UpdateStatus(p.ID, entity.PaymentPaid)
	require.NoError(t, err)
	_, err = f.payments.UpdateStatus(p.ID, entity.PaymentPending)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	refunded, err := f.payments.UpdateStatus(p.ID, entity.PaymentRefunded)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRefunded, refunded.Status)

	_, err = f.payments.UpdateStatus(p.ID, "LOST")
	assert.ErrorIs(t, err, apperr.ErrInvalid)
	_, err = f.payments.UpdateStatus(9999, entity.PaymentPaid)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRecordRejectsStatusBeforeWriting(t *testing.T) {
	f := newFixture(t)
	sub, err := f.subs.Repo.FindByProfile(f.profile.ID)
	require.NoError(t, err)

	countPayments := func() int64 {
		var n int64
		require.NoError(t, f.db.Model(&entity.Payment{}).Count(&n).Error)
		return n
	}

	_, err = f.payments.Record(PaymentInput{SubscriptionID: sub.ID, Plan: "STANDARD", Status: "REFUNDED"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, int64(0), countPayments())

	// subscription ไม่มีจริง ต้องไม่มีแถวค้าง
	_, err = f.payments.Record(PaymentInput{SubscriptionID: 9999, Plan: "STANDARD", Status: "PAID"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, int64(0), countPayments())

	failed, err := f.payments.Record(PaymentInput{SubscriptionID: sub.ID, Plan: "STANDARD", Status: "failed"})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentFailed, failed.Status)
	assert.Equal(t, int64(1), countPayments())

	sub, err = f.subs.Repo.FindByProfile(f.profile.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanFree, sub.Plan)
}
