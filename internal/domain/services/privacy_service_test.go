package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/testutil"
)

func TestPrivacyDefaultsWithoutRow(t *testing.T) {
	cfg := testutil.NewConfig(t)
	db := testutil.NewDB(t, cfg)
	svc := NewPrivacyService(db, cfg)

	setting, err := svc.Get(77)
	require.NoError(t, err)
	assert.Equal(t, models.NewPrivacySetting(77), setting)
}

func TestPrivacySetFieldUpserts(t *testing.T) {
	cfg := testutil.NewConfig(t)
	db := testutil.NewDB(t, cfg)
	svc := NewPrivacyService(db, cfg)

	require.NoError(t, svc.SetField(5, "phone", false))
	require.NoError(t, svc.SetField(5, "dob", false))
	setting, err := svc.Get(5)
	require.NoError(t, err)
	assert.False(t, setting.ShowPhone)
	assert.False(t, setting.ShowDOB)
	assert.True(t, setting.ShowEmail)

	assert.ErrorIs(t, svc.SetField(5, "password", false), ErrInvalidInput)

	var count int64
	require.NoError(t, db.Model(&models.PrivacySetting{}).Where("user_id = ?", 5).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPrivacyReplace(t *testing.T) {
	cfg := testutil.NewConfig(t)
	db := testutil.NewDB(t, cfg)
	svc := NewPrivacyService(db, cfg)
	user := testutil.CreateUser(t, db, "asha")
	require.NoError(t, svc.SetField(user.ID, "email", false))

	off := false
	setting, err := svc.Replace(user.ID, PrivacyInput{ShowGender: &off})
	require.NoError(t, err)
	assert.False(t, setting.ShowGender)
	assert.True(t, setting.ShowEmail, "omitted flags reset to visible")
}
