package service

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"testimonial-portal-backend/internal/config"
	"testimonial-portal-backend/internal/logger"
)

// Mailer delivers a single plain-text message. Tests substitute a fake.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail through a configured SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer from the notification configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

// Send delivers one message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// Notifier sends the two fixed-template notices that follow a successful
// submission: an edit-link reminder to the submitter and a review prompt to
// the moderation address. Delivery is fire-and-forget; failures are logged
// and never retried or surfaced.
type Notifier struct {
	mailer         Mailer
	moderationAddr string
	baseURL        string
	log            *logger.Logger
}

// Ensure Notifier implements NotifierInterface
var _ NotifierInterface = (*Notifier)(nil)

// NewNotifier creates a Notifier
func NewNotifier(mailer Mailer, moderationAddr, baseURL string) *Notifier {
	return &Notifier{
		mailer:         mailer,
		moderationAddr: moderationAddr,
		baseURL:        baseURL,
		log:            logger.New(),
	}
}

// SubmissionReceived sends both notices for a newly created record.
func (n *Notifier) SubmissionReceived(id, name, email string) {
	editLink := fmt.Sprintf("%s/testimonials?action=Modify&id=%s", n.baseURL, id)

	submitterBody := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Thank you for submitting your deployment profile. It will appear in the\n"+
			"public listing once a moderator has reviewed it.\n\n"+
			"You can edit your submission at any time using this link:\n\n%s\n\n"+
			"Please keep this link private; it is the only way to change your entry.\n",
		name, editLink)
	if err := n.mailer.Send(email, "Your testimonial submission", submitterBody); err != nil {
		n.log.WithRecord(id).WithField("to", email).Warnf("submitter notice failed: %v", err)
	}

	moderationBody := fmt.Sprintf(
		"A new testimonial was submitted by %s <%s>.\n\n"+
			"Review it here:\n\n%s/testimonials?action=View&id=%s\n",
		name, email, n.baseURL, id)
	if err := n.mailer.Send(n.moderationAddr, "New testimonial awaiting review", moderationBody); err != nil {
		n.log.WithRecord(id).Warnf("moderation notice failed: %v", err)
	}
}
