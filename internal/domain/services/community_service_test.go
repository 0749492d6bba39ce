package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/storage"
	"github.com/RealSujal/community-app/internal/testutil"
)

type communityFixture struct {
	db     *gorm.DB
	svc    InterfaceCommunityService
	notify InterfaceNotificationService
}

func newCommunityFixture(t *testing.T) *communityFixture {
	t.Helper()
	cfg := testutil.NewConfig(t)
	db := testutil.NewDB(t, cfg)
	notify := NewNotificationService(db, cfg)
	return &communityFixture{
		db:     db,
		svc:    NewCommunityService(db, cfg, notify, storage.NewFileStore(cfg)),
		notify: notify,
	}
}

func (f *communityFixture) role(t *testing.T, userID uint) string {
	t.Helper()
	m, err := f.svc.Membership(userID)
	require.NoError(t, err)
	return m.Role
}

func TestCreateAndJoin(t *testing.T) {
	f := newCommunityFixture(t)
	head := testutil.CreateUser(t, f.db, "head")
	member := testutil.CreateUser(t, f.db, "member")

	community, err := f.svc.Create(head.ID, "Green Park", "Pune", "")
	require.NoError(t, err)
	assert.Len(t, community.InviteCode, 6)
	assert.Equal(t, "head", f.role(t, head.ID))

	_, err = f.svc.Join(member.ID, "NOPE00")
	assert.ErrorIs(t, err, ErrInvalidInviteCode)

	joined, err := f.svc.Join(member.ID, community.InviteCode)
	require.NoError(t, err)
	assert.Equal(t, community.ID, joined.ID)
	assert.Equal(t, "member", f.role(t, member.ID))

	_, err = f.svc.Join(member.ID, community.InviteCode)
	assert.ErrorIs(t, err, ErrAlreadyMember)
	_, err = f.svc.Create(member.ID, "Another", "", "")
	assert.ErrorIs(t, err, ErrAlreadyMember)
	_, err = f.svc.Create(testutil.CreateUser(t, f.db, "x").ID, " ", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMembersOrderingAndFilters(t *testing.T) {
	f := newCommunityFixture(t)
	head := testutil.CreateUser(t, f.db, "zed")
	community := testutil.CreateCommunity(t, f.db, head, "ABC123")
	bob := testutil.CreateUser(t, f.db, "bob")
	amy := testutil.CreateUser(t, f.db, "amy")
	carl := testutil.CreateUser(t, f.db, "carl")
	testutil.AddMember(t, f.db, community, bob, "member")
	testutil.AddMember(t, f.db, community, amy, "member")
	testutil.AddMember(t, f.db, community, carl, "admin")
	require.NoError(t, f.db.Model(amy).Updates(map[string]interface{}{"location": "Pune", "profile_picture": "uploads/profile_pictures/a.png"}).Error)

	members, err := f.svc.Members(bob.ID, MemberFilter{})
	require.NoError(t, err)
	var names []string
	for _, m := range members {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"zed", "carl", "amy", "bob"}, names)
	require.NotNil(t, members[2].ProfilePicture)
	assert.Equal(t, "http://localhost:3000/uploads/profile_pictures/a.png", *members[2].ProfilePicture)
	assert.Nil(t, members[3].ProfilePicture)

	byRole, err := f.svc.Members(bob.ID, MemberFilter{Role: "admin"})
	require.NoError(t, err)
	require.Len(t, byRole, 1)
	assert.Equal(t, "carl", byRole[0].Name)

	byLocation, err := f.svc.Members(bob.ID, MemberFilter{Location: "Pune"})
	require.NoError(t, err)
	require.Len(t, byLocation, 1)

	byName, err := f.svc.Members(bob.ID, MemberFilter{Name: "ar"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "carl", byName[0].Name)

	outsider := testutil.CreateUser(t, f.db, "out")
	_, err = f.svc.Members(outsider.ID, MemberFilter{})
	assert.ErrorIs(t, err, ErrNotCommunityMember)
	_, err = f.svc.Member(bob.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRoleGate(t *testing.T) {
	f := newCommunityFixture(t)
	head := testutil.CreateUser(t, f.db, "head")
	community := testutil.CreateCommunity(t, f.db, head, "ABC123")
	admin := testutil.CreateUser(t, f.db, "admin")
	m1 := testutil.CreateUser(t, f.db, "m1")
	m2 := testutil.CreateUser(t, f.db, "m2")
	testutil.AddMember(t, f.db, community, admin, "admin")
	testutil.AddMember(t, f.db, community, m1, "member")
	testutil.AddMember(t, f.db, community, m2, "member")

	assert.ErrorIs(t, f.svc.Promote(m1.ID, m2.ID), ErrForbidden, "members cannot promote")
	assert.ErrorIs(t, f.svc.Promote(admin.ID, admin.ID), ErrInvalidInput)
	assert.ErrorIs(t, f.svc.Demote(admin.ID, head.ID), ErrForbidden, "the head cannot be demoted")
	assert.ErrorIs(t, f.svc.RemoveMember(admin.ID, head.ID), ErrForbidden)

	require.NoError(t, f.svc.Promote(admin.ID, m1.ID))
	assert.Equal(t, "admin", f.role(t, m1.ID))
	require.NoError(t, f.svc.Demote(head.ID, m1.ID))
	assert.Equal(t, "member", f.role(t, m1.ID))

	require.NoError(t, f.svc.RemoveMember(admin.ID, m2.ID))
	_, err := f.svc.Membership(m2.ID)
	assert.ErrorIs(t, err, ErrNotCommunityMember)
	assert.ErrorIs(t, f.svc.RemoveMember(admin.ID, m2.ID), ErrUserNotFound)

	f.notify.Wait()
	notes, err := f.notify.List(m2.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Removed from community", notes[0].Title)
	assert.Contains(t, notes[0].Message, "by admin")
}

func TestLeaveAndTransferHead(t *testing.T) {
	f := newCommunityFixture(t)
	head := testutil.CreateUser(t, f.db, "head")
	community := testutil.CreateCommunity(t, f.db, head, "ABC123")
	member := testutil.CreateUser(t, f.db, "member")
	testutil.AddMember(t, f.db, community, member, "member")

	assert.ErrorIs(t, f.svc.Leave(head.ID), ErrHeadMustTransfer)
	assert.ErrorIs(t, f.svc.TransferHead(member.ID, head.ID), ErrForbidden)
	assert.ErrorIs(t, f.svc.TransferHead(head.ID, 9999), ErrUserNotFound)
	assert.Equal(t, "head", f.role(t, head.ID), "failed transfer leaves roles untouched")

	require.NoError(t, f.svc.TransferHead(head.ID, member.ID))
	assert.Equal(t, "head", f.role(t, member.ID))
	assert.Equal(t, "admin", f.role(t, head.ID))

	f.notify.Wait()
	notes, err := f.notify.List(member.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "You are now the Community head!", notes[0].Title)
	assert.Equal(t, NotificationRole, notes[0].Type)

	require.NoError(t, f.svc.Leave(head.ID))
	_, err = f.svc.MyCommunity(head.ID)
	assert.ErrorIs(t, err, ErrNotCommunityMember)

	view, err := f.svc.MyCommunity(member.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", view.InviteCode)
	assert.Equal(t, "head", view.Role)
}

func TestDashboard(t *testing.T) {
	f := newCommunityFixture(t)
	head := testutil.CreateUser(t, f.db, "head")
	community := testutil.CreateCommunity(t, f.db, head, "ABC123")
	other := testutil.CreateUser(t, f.db, "other")
	otherCommunity := testutil.CreateCommunity(t, f.db, other, "XYZ789")

	post := &models.Post{CommunityID: community.ID, UserID: head.ID}
	require.NoError(t, f.db.Create(post).Error)
	foreign := &models.Post{CommunityID: otherCommunity.ID, UserID: other.ID}
	require.NoError(t, f.db.Create(foreign).Error)
	require.NoError(t, f.db.Create(&models.Comment{PostID: post.ID, UserID: head.ID, Comment: "hi"}).Error)
	require.NoError(t, f.db.Create(&models.Comment{PostID: foreign.ID, UserID: other.ID, Comment: "hi"}).Error)
	require.NoError(t, f.db.Create(&models.Like{PostID: post.ID, UserID: head.ID}).Error)

	stats, err := f.svc.Dashboard(head.ID)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{Members: 1, Posts: 1, Comments: 1, Likes: 1}, *stats)
}
