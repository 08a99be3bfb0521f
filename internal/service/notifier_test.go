package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testimonial-portal-backend/internal/service"
)

func TestNotifier_SendsBothNotices(t *testing.T) {
	mailer := &fakeMailer{}
	notifier := service.NewNotifier(mailer, "moderation@example.com", testBaseURL)

	notifier.SubmissionReceived("abc123", "Jane Doe", "jane@example.com")

	require.Len(t, mailer.sent, 2)

	submitter := mailer.sent[0]
	assert.Equal(t, "jane@example.com", submitter.To)
	assert.Equal(t, "Your testimonial submission", submitter.Subject)
	assert.Contains(t, submitter.Body, "Jane Doe")
	assert.Contains(t, submitter.Body, testBaseURL+"/testimonials?action=Modify&id=abc123")

	moderation := mailer.sent[1]
	assert.Equal(t, "moderation@example.com", moderation.To)
	assert.Equal(t, "New testimonial awaiting review", moderation.Subject)
	assert.Contains(t, moderation.Body, "Jane Doe <jane@example.com>")
	assert.Contains(t, moderation.Body, "action=View&id=abc123")
}

func TestNotifier_DeliveryFailureIsSwallowed(t *testing.T) {
	notifier := service.NewNotifier(&fakeMailer{fail: true}, "moderation@example.com", testBaseURL)

	assert.NotPanics(t, func() {
		notifier.SubmissionReceived("abc123", "Jane Doe", "jane@example.com")
	})
}
