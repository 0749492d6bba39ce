package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/storage"
	"github.com/RealSujal/community-app/internal/testutil"
)

func newUserService(t *testing.T) (InterfaceUserService, *testutil.FakeMailer, func() *models.User) {
	t.Helper()
	cfg := testutil.NewConfig(t)
	db := testutil.NewDB(t, cfg)
	m := &testutil.FakeMailer{}
	auth := NewAuthService(db, cfg, NewOTPService(NewGormOTPStore(db), m, cfg), NewJWTService(cfg))
	svc := NewUserService(db, cfg, storage.NewFileStore(cfg), auth)

	n := 0
	create := func() *models.User {
		n++
		return testutil.CreateUser(t, db, []string{"asha", "ravi", "meera"}[n-1])
	}
	return svc, m, create
}

func TestEditProfile(t *testing.T) {
	svc, _, create := newUserService(t)
	asha := create()
	ravi := create()

	err := svc.EditProfile(asha.ID, ProfileInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.EditProfile(asha.ID, ProfileInput{Email: "RAVI@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	err = svc.EditProfile(asha.ID, ProfileInput{
		Name:        "Asha K",
		Location:    "Pune",
		SocialLinks: map[string]string{"instagram": "@asha"},
	})
	require.NoError(t, err)

	me, err := svc.Me(asha.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha K", me.Name)
	assert.Equal(t, "Pune", me.Location)
	assert.Equal(t, "9000000000", me.Phone, "empty fields stay untouched")
	assert.Equal(t, "@asha", me.SocialLinks["instagram"])
	assert.Nil(t, me.Role)
	assert.Nil(t, me.ProfilePicture)

	_, err = svc.Me(ravi.ID + 100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUploadProfilePicture(t *testing.T) {
	svc, _, create := newUserService(t)
	asha := create()

	_, err := svc.UploadProfilePicture(asha.ID, testutil.FileHeader(t, "me.mp4", "x"))
	assert.ErrorIs(t, err, ErrInvalidMedia)

	first, err := svc.UploadProfilePicture(asha.ID, testutil.FileHeader(t, "me.png", "one"))
	require.NoError(t, err)
	us := svc.(*UserService)
	_, err = os.Stat(filepath.Join(us.Files.Root, "profile_pictures", filepath.Base(first)))
	require.NoError(t, err)

	second, err := svc.UploadProfilePicture(asha.ID, testutil.FileHeader(t, "me.jpg", "two"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = os.Stat(filepath.Join(us.Files.Root, "profile_pictures", filepath.Base(second)))
	assert.NoError(t, err, "new picture is kept")
	_, err = os.Stat(filepath.Join(us.Files.Root, "profile_pictures", filepath.Base(first)))
	assert.True(t, os.IsNotExist(err), "old picture is removed")

	me, err := svc.Me(asha.ID)
	require.NoError(t, err)
	require.NotNil(t, me.ProfilePicture)
	assert.Equal(t, "http://localhost:3000/"+second, *me.ProfilePicture)
}

func TestPublicProfileAppliesPrivacy(t *testing.T) {
	svc, _, create := newUserService(t)
	asha := create()
	ravi := create()
	db := svc.(*UserService).DB

	family := &models.Family{FamilyName: "Kulkarni", UserID: asha.ID}
	require.NoError(t, db.Create(family).Error)
	require.NoError(t, db.Create(&models.Person{FamilyID: family.ID, Name: "Asha", Relation: "head", UserID: &asha.ID}).Error)
	require.NoError(t, db.Create(&models.Person{FamilyID: family.ID, Name: "Kiran", Relation: "son"}).Error)
	require.NoError(t, db.Model(&models.PrivacySetting{}).Where("user_id = ?", asha.ID).
		Updates(map[string]interface{}{"show_phone": false, "show_email": false}).Error)

	public, err := svc.PublicProfile(ravi.ID, asha.ID)
	require.NoError(t, err)
	assert.Empty(t, public.User.Phone)
	assert.Empty(t, public.User.Email)
	assert.Equal(t, "asha", public.User.Name)
	assert.False(t, public.Privacy.Phone)
	assert.True(t, public.Privacy.Gender)
	assert.Equal(t, []FamilyEntry{{Name: "Asha", Relation: "head"}, {Name: "Kiran", Relation: "son"}}, public.Family)

	own, err := svc.PublicProfile(asha.ID, asha.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", own.User.Email, "owners see their own fields")

	lonely, err := svc.PublicProfile(asha.ID, ravi.ID)
	require.NoError(t, err)
	assert.Empty(t, lonely.Family)

	_, err = svc.PublicProfile(asha.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserChangePassword(t *testing.T) {
	svc, _, create := newUserService(t)
	asha := create()

	err := svc.ChangePassword(asha.ID, "wrong", "newpass", "newpass")
	assert.ErrorIs(t, err, ErrWrongPassword)
	err = svc.ChangePassword(asha.ID, testutil.DefaultPassword, "newpass", "other")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	require.NoError(t, svc.ChangePassword(asha.ID, testutil.DefaultPassword, "newpass", "newpass"))
}
