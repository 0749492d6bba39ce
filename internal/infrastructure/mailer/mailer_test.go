package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOTPRegister(t *testing.T) {
	msg, err := RenderOTP("1234", PurposeRegister, 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "Your OTP for Registration", msg.Subject)
	assert.Contains(t, msg.HTML, "<h2>1234</h2>")
	assert.Contains(t, msg.HTML, "expire in 10 minutes")
}

func TestRenderOTPReset(t *testing.T) {
	msg, err := RenderOTP("9876", PurposeReset, 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "Your OTP to Reset Password", msg.Subject)
	assert.Contains(t, msg.HTML, "reset your password")
	assert.Contains(t, msg.HTML, "expire in 5 minutes")
}
