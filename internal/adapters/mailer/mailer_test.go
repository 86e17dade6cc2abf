package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/pkg/errors"
)

func TestNewSMTPSender_AcceptsUnconfigured(t *testing.T) {
	sender, err := NewSMTPSender(Config{Host: "smtp.gmail.com", Port: 465})
	require.NoError(t, err)

	assert.False(t, sender.Configured())
}

func TestSend_Unconfigured(t *testing.T) {
	sender, err := NewSMTPSender(Config{Host: "smtp.gmail.com", Port: 465})
	require.NoError(t, err)

	err = sender.Send(context.Background(), "someone@example.com", "Hi", "Body")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMailerNotConfigured))
}

func TestSend_ValidatesInput(t *testing.T) {
	sender, err := NewSMTPSender(Config{
		Host:     "smtp.gmail.com",
		Port:     465,
		Sender:   "ops@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.True(t, sender.Configured())

	err = sender.Send(context.Background(), "", "Hi", "Body")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	err = sender.Send(context.Background(), "someone@example.com", "", "Body")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	err = sender.Send(context.Background(), "not-an-address", "Hi", "Body")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}
