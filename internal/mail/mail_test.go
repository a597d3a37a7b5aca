package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DisabledWithoutCredentials(t *testing.T) {
	t.Parallel()

	m, err := NewClient("", "", "", "noreply@example.com", "memberhub")
	require.NoError(t, err)
	assert.False(t, m.IsEnabled())

	// A disabled mailer swallows sends.
	require.NoError(t, m.SendTo("subject", "body", "user@example.com"))
}

func TestResetEmail_ContainsLink(t *testing.T) {
	t.Parallel()

	subject, body := ResetEmail("http://localhost:8080/auth/reset-password?token=abc")
	assert.NotEmpty(t, subject)
	assert.Contains(t, body, "http://localhost:8080/auth/reset-password?token=abc")
	assert.Contains(t, body, "24 hours")
}

func TestInviteEmail_Greeting(t *testing.T) {
	t.Parallel()

	name := "Taro"
	_, body := InviteEmail(&name, "taro@example.com", "http://localhost/set")
	assert.Contains(t, body, "Hello Taro,")

	_, body = InviteEmail(nil, "taro@example.com", "http://localhost/set")
	assert.Contains(t, body, "Hello taro@example.com,")
	assert.Contains(t, body, "7 days")
}
