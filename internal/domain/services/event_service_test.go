package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealSujal/community-app/internal/infrastructure/storage"
	"github.com/RealSujal/community-app/internal/testutil"
)

func TestEventLifecycle(t *testing.T) {
	cfg := testutil.NewConfig(t)
	db := testutil.NewDB(t, cfg)
	svc := NewEventService(db, cfg, storage.NewFileStore(cfg))

	head := testutil.CreateUser(t, db, "head")
	admin := testutil.CreateUser(t, db, "admin")
	member := testutil.CreateUser(t, db, "member")
	community := testutil.CreateCommunity(t, db, head, "EVT123")
	testutil.AddMember(t, db, community, admin, "admin")
	testutil.AddMember(t, db, community, member, "member")

	_, err := svc.Create(member.ID, EventInput{Name: "Picnic", EventDate: "2026-05-01", EventTime: "10:00"}, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(admin.ID, EventInput{Name: "Picnic", EventDate: "01/05/2026", EventTime: "10:00"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(admin.ID, EventInput{Name: "Picnic", EventDate: "2026-05-01"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(admin.ID, EventInput{Name: "Film", EventDate: "2026-05-01", EventTime: "18:00"},
		testutil.FileHeader(t, "clip.mp4", "video"))
	assert.ErrorIs(t, err, ErrInvalidMedia, "events accept images only")

	late, err := svc.Create(head.ID, EventInput{Name: "Diwali", EventDate: "2026-11-08", EventTime: "19:00"}, nil)
	require.NoError(t, err)
	evening, err := svc.Create(admin.ID, EventInput{Name: "Meeting", EventDate: "2026-05-01", EventTime: "18:00"}, nil)
	require.NoError(t, err)
	morning, err := svc.Create(admin.ID, EventInput{Name: "Yoga", EventDate: "2026-05-01", EventTime: "07:30", Location: "Park"},
		testutil.FileHeader(t, "mat.png", "png"))
	require.NoError(t, err)

	events, err := svc.List(member.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []uint{morning.ID, evening.ID, late.ID}, []uint{events[0].ID, events[1].ID, events[2].ID})
	assert.Equal(t, "admin", events[0].CreatorName)
	require.NotNil(t, events[0].ImageURL)
	assert.Contains(t, *events[0].ImageURL, "http://localhost:3000/uploads/events/")
	assert.Nil(t, events[1].ImageURL)

	assert.ErrorIs(t, svc.Delete(member.ID, morning.ID), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(member.ID, 999), ErrEventNotFound)
	require.NoError(t, svc.Delete(admin.ID, morning.ID))
	require.NoError(t, svc.Delete(admin.ID, late.ID), "admins delete events of others")

	outsider := testutil.CreateUser(t, db, "outsider")
	testutil.CreateCommunity(t, db, outsider, "OUT123")
	assert.ErrorIs(t, svc.Delete(outsider.ID, evening.ID), ErrEventNotFound)

	events, err = svc.List(head.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
