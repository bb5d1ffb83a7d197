package mailing

import (
	"testing"

	"Foodgram-Backend/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessageHeaders(t *testing.T) {
	msg := BuildMessage(MailConfig{SMTPEmail: "noreply@foodgram.io", SMTPSender: "Foodgram"}, "cook@example.com", "Welcome", "<p>hi</p>")

	assert.Equal(t, []string{"cook@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Welcome"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{`"Foodgram" <noreply@foodgram.io>`}, msg.GetHeader("From"))
}

func TestSendMailNotConfigured(t *testing.T) {
	utils.SetConfig(utils.Config{})

	err := NewMailer().SendMail("cook@example.com", "Welcome", "<p>hi</p>")
	assert.ErrorIs(t, err, ErrMailNotConfigured)
}
