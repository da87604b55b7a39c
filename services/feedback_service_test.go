package services

import (
	"context"
	"strings"
	"testing"

	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFeedbackState(t *testing.T) {
	cases := map[int]string{
		1: entity.FeedbackFlagged,
		2: entity.FeedbackFlagged,
		3: entity.FeedbackPending,
		4: entity.FeedbackApproved,
		5: entity.FeedbackApproved,
	}
	for rating, want := range cases {
		assert.Equal(t, want, DeriveFeedbackState(rating), "rating %d", rating)
	}
}

func TestSubmitFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.newMenu(t, "Lunch")

	// ยังไม่ publish
	_, err := f.feedback.Submit(ctx, m.ID, FeedbackInput{Rating: 5})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.menus.TogglePublish(f.owner, m.ID)
	require.NoError(t, err)

	_, err = f.feedback.Submit(ctx, m.ID, FeedbackInput{Rating: 0})
	assert.ErrorIs(t, err, apperr.ErrInvalid)
	_, err = f.feedback.Submit(ctx, m.ID, FeedbackInput{Rating: 6})
	assert.ErrorIs(t, err, apperr.ErrInvalid)
	_, err = f.feedback.Submit(ctx, m.ID, FeedbackInput{Rating: 4, Comment: strings.Repeat("a", 2001)})
	assert.ErrorIs(t, err, apperr.ErrInvalid)

	fb, err := f.feedback.Submit(ctx, m.ID, FeedbackInput{Rating: 1, Comment: "  cold soup ", CustomerName: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackFlagged, fb.State)
	assert.Equal(t, "cold soup", fb.Comment)
	assert.Equal(t, f.profile.ID, fb.ProfileID)
	require.NotNil(t, fb.MenuID)
	assert.Equal(t, m.ID, *fb.MenuID)

	assert.Equal(t, []string{EventFeedbackCreated}, f.notifier.types())
}

func TestListAndModerateFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.newMenu(t, "Lunch")
	_, err := f.menus.TogglePublish(f.owner, m.ID)
	require.NoError(t, err)

	for _, r := range []int{5, 3, 2} {
		_, err := f.feedback.Submit(ctx, m.ID, FeedbackInput{Rating: r})
		require.NoError(t, err)
	}

	page := repository.NewPage(1, 20)
	all, total, err := f.feedback.List(f.owner, f.profile.ID, "", page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	flagged, total, err := f.feedback.List(f.owner, f.profile.ID, "flagged", page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, flagged, 1)

	_, _, err = f.feedback.List(f.owner, f.profile.ID, "LOST", page)
	assert.ErrorIs(t, err, apperr.ErrInvalid)

	fb, err := f.feedback.UpdateState(f.owner, flagged[0].ID, "hidden")
	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackHidden, fb.State)

	intruder := f.newUser(t, "intruder@example.com", entity.RoleOwner)
	_, err = f.feedback.UpdateState(intruder, flagged[0].ID, entity.FeedbackApproved)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, _, err = f.feedback.List(intruder, f.profile.ID, "", page)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
