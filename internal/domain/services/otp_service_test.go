package services

import (
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/mailer"
	"github.com/RealSujal/community-app/internal/testutil"
)

type otpFixture struct {
	svc    *OTPService
	mailer *testutil.FakeMailer
	clock  time.Time
}

func newOTPFixture(t *testing.T, store func(t *testing.T) OTPStore) *otpFixture {
	t.Helper()
	cfg := testutil.NewConfig(t)
	m := &testutil.FakeMailer{}
	f := &otpFixture{mailer: m, clock: time.Now().UTC().Truncate(time.Second)}
	f.svc = NewOTPService(store(t), m, cfg).(*OTPService)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func gormStore(t *testing.T) OTPStore {
	cfg := testutil.NewConfig(t)
	return NewGormOTPStore(testutil.NewDB(t, cfg))
}

func redisStore(t *testing.T) OTPStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisOTPStore(NewRedisServiceWithClient(client))
}

func TestOTPServiceStores(t *testing.T) {
	stores := map[string]func(t *testing.T) OTPStore{
		"gorm":  gormStore,
		"redis": redisStore,
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			t.Run("send then verify and consume", func(t *testing.T) {
				f := newOTPFixture(t, store)
				resent, err := f.svc.Send(" Alice@Example.com ", models.OTPPurposeRegister)
				require.NoError(t, err)
				assert.False(t, resent)

				sent := f.mailer.Last()
				assert.Equal(t, "alice@example.com", sent.To)
				assert.Equal(t, mailer.PurposeRegister, sent.Purpose)
				assert.Equal(t, 10*time.Minute, sent.Expiry)

				require.NoError(t, f.svc.Verify("alice@example.com", sent.OTP, models.OTPPurposeRegister))
				require.NoError(t, f.svc.Consume("alice@example.com"))
				assert.ErrorIs(t, f.svc.Verify("alice@example.com", sent.OTP, models.OTPPurposeRegister), ErrOTPNotFound)
			})

			t.Run("valid code is re-sent", func(t *testing.T) {
				f := newOTPFixture(t, store)
				_, err := f.svc.Send("bob@example.com", models.OTPPurposeRegister)
				require.NoError(t, err)
				first := f.mailer.Last().OTP

				f.clock = f.clock.Add(time.Minute)
				resent, err := f.svc.Send("bob@example.com", models.OTPPurposeRegister)
				require.NoError(t, err)
				assert.True(t, resent)
				assert.Equal(t, first, f.mailer.Last().OTP)
			})

			t.Run("other purpose replaces code", func(t *testing.T) {
				f := newOTPFixture(t, store)
				f.svc.generate = func() string { return "1111" }
				_, err := f.svc.Send("carol@example.com", models.OTPPurposeRegister)
				require.NoError(t, err)

				f.svc.generate = func() string { return "2222" }
				resent, err := f.svc.Send("carol@example.com", models.OTPPurposeReset)
				require.NoError(t, err)
				assert.False(t, resent)

				assert.ErrorIs(t, f.svc.Verify("carol@example.com", "2222", models.OTPPurposeRegister), ErrOTPInvalid)
				assert.NoError(t, f.svc.Verify("carol@example.com", "2222", models.OTPPurposeReset))
			})

			t.Run("wrong code", func(t *testing.T) {
				f := newOTPFixture(t, store)
				f.svc.generate = func() string { return "4321" }
				_, err := f.svc.Send("dan@example.com", models.OTPPurposeRegister)
				require.NoError(t, err)
				assert.ErrorIs(t, f.svc.Verify("dan@example.com", "1234", models.OTPPurposeRegister), ErrOTPInvalid)
			})

			t.Run("unknown email", func(t *testing.T) {
				f := newOTPFixture(t, store)
				assert.ErrorIs(t, f.svc.Verify("nobody@example.com", "1234", models.OTPPurposeRegister), ErrOTPNotFound)
			})
		})
	}
}

func TestOTPExpiryBoundary(t *testing.T) {
	f := newOTPFixture(t, gormStore)
	f.svc.generate = func() string { return "5555" }
	_, err := f.svc.Send("erin@example.com", models.OTPPurposeRegister)
	require.NoError(t, err)

	f.clock = f.clock.Add(10 * time.Minute)
	assert.NoError(t, f.svc.Verify("erin@example.com", "5555", models.OTPPurposeRegister), "expiry instant is still valid")

	f.clock = f.clock.Add(time.Second)
	assert.ErrorIs(t, f.svc.Verify("erin@example.com", "5555", models.OTPPurposeRegister), ErrOTPExpired)

	// an expired code is replaced by a new one
	f.svc.generate = func() string { return "6666" }
	resent, err := f.svc.Send("erin@example.com", models.OTPPurposeRegister)
	require.NoError(t, err)
	assert.False(t, resent)
	assert.Equal(t, "6666", f.mailer.Last().OTP)
}

func TestOTPSendMailFailure(t *testing.T) {
	f := newOTPFixture(t, gormStore)
	f.mailer.Err = errors.New("smtp down")
	_, err := f.svc.Send("fay@example.com", models.OTPPurposeRegister)
	assert.ErrorIs(t, err, ErrOTPSend)
}

func TestOTPSendRequiresEmail(t *testing.T) {
	f := newOTPFixture(t, gormStore)
	_, err := f.svc.Send("  ", models.OTPPurposeRegister)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRedisOTPStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := NewRedisOTPStore(NewRedisServiceWithClient(client))

	require.NoError(t, store.Save(&models.OTPVerification{
		Email:     "gus@example.com",
		OTP:       "1234",
		Purpose:   models.OTPPurposeRegister,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}))
	ttl := mr.TTL("otp:gus@example.com")
	assert.True(t, ttl > 4*time.Minute && ttl <= 5*time.Minute, "ttl %v", ttl)

	mr.FastForward(6 * time.Minute)
	_, err := store.Get("gus@example.com")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}
