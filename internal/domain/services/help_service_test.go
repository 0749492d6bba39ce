package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealSujal/community-app/internal/infrastructure/database"
	"github.com/RealSujal/community-app/internal/testutil"
)

func TestHelpFAQsAndFeedback(t *testing.T) {
	cfg := testutil.NewConfig(t)
	db := testutil.NewDB(t, cfg)
	require.NoError(t, database.SeedFAQs(db))
	svc := NewHelpService(db, cfg)

	faqs, err := svc.ListFAQs()
	require.NoError(t, err)
	assert.NotEmpty(t, faqs)

	_, err = svc.SubmitFeedback(1, 0, "", false)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.SubmitFeedback(1, 6, "", false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	fb, err := svc.SubmitFeedback(1, 5, " great ", true)
	require.NoError(t, err)
	assert.Equal(t, "great", fb.Message)
	assert.NotZero(t, fb.ID)
}

func TestHelpChat(t *testing.T) {
	svc := NewHelpService(nil, nil)

	tests := []struct {
		message string
		want    string
	}{
		{"How do I CHANGE PHONE?", "You can update your phone number in the Edit Profile screen."},
		{"I want to join community", "To join a community, go to Join Community and enter the code."},
		{"forgot password help", "Use Forgot Password on login screen to reset."},
		{"what is the weather", defaultChatReply},
	}
	for _, tt := range tests {
		got, err := svc.Chat(tt.message)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.message)
	}

	_, err := svc.Chat("   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
