// Package notify is the fire-and-forget notification sink: every operation
// succeeds from the caller's point of view, delivery failures are logged and
// dropped.
package notify

import (
	"fmt"
	"html"
	"log"
	"time"

	"placement-hub/internal/domain/application"
)

type Notifier struct {
	mailer Mailer
	logger *log.Logger
}

func NewNotifier(mailer Mailer, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{mailer: mailer, logger: logger}
}

func (n *Notifier) SendInterviewConfirmation(email, companyName string, scheduledAt time.Time, meetingLink, interviewType string) {
	company := html.EscapeString(companyName)
	body := fmt.Sprintf(`<h2>Interview Confirmation</h2>
<p>Your interview with <strong>%s</strong> has been scheduled.</p>
<p><strong>Date &amp; Time:</strong> %s</p>
<p><strong>Format:</strong> %s</p>
%s<p>Please be on time. Good luck!</p>`,
		company, scheduledAt.Format(time.RFC1123), html.EscapeString(interviewType), joinLinkHTML(meetingLink))

	n.deliver(email, "Interview Scheduled - "+companyName, body)
}

func (n *Notifier) SendInterviewReminder(email, companyName string, scheduledAt time.Time, meetingLink string) {
	company := html.EscapeString(companyName)
	body := fmt.Sprintf(`<h2>Interview Reminder</h2>
<p>This is a reminder that your interview with <strong>%s</strong> is coming up.</p>
<p><strong>Date &amp; Time:</strong> %s</p>
%s`, company, scheduledAt.Format(time.RFC1123), joinLinkHTML(meetingLink))

	n.deliver(email, "Reminder: Interview - "+companyName, body)
}

func (n *Notifier) SendApplicationStatusUpdate(email, companyName, jobTitle string, status application.Status) {
	body := fmt.Sprintf(`<h2>Application Update</h2>
<p>Your application for <strong>%s</strong> at <strong>%s</strong> is now <strong>%s</strong>.</p>`,
		html.EscapeString(jobTitle), html.EscapeString(companyName), html.EscapeString(string(status)))

	n.deliver(email, "Application Update - "+companyName, body)
}

func (n *Notifier) SendOfferNotification(email, companyName, jobTitle string, offer *application.OfferDetails) {
	body := fmt.Sprintf(`<h2>Congratulations!</h2>
<p><strong>%s</strong> has extended you an offer for <strong>%s</strong>.</p>`,
		html.EscapeString(companyName), html.EscapeString(jobTitle))
	if offer != nil {
		body += fmt.Sprintf(`<p><strong>CTC:</strong> %.2f</p>`, offer.CTC)
		if offer.JoiningDate != nil {
			body += fmt.Sprintf(`<p><strong>Joining Date:</strong> %s</p>`, offer.JoiningDate.Format("2006-01-02"))
		}
		if offer.ValidUntil != nil {
			body += fmt.Sprintf(`<p><strong>Offer valid until:</strong> %s</p>`, offer.ValidUntil.Format("2006-01-02"))
		}
	}

	n.deliver(email, "Offer Letter - "+companyName, body)
}

func (n *Notifier) deliver(to, subject, body string) {
	if n == nil || n.mailer == nil {
		return
	}
	if to == "" {
		n.logger.Printf("[Email] Skipped | reason=no_recipient subject=%q", subject)
		return
	}
	if err := n.mailer.Send(to, subject, body); err != nil {
		n.logger.Printf("[Email] Send failed | to=%s subject=%q error=%v", to, subject, err)
	}
}

func joinLinkHTML(link string) string {
	if link == "" {
		return ""
	}
	return fmt.Sprintf(`<p><strong>Meeting Link:</strong> <a href=%q>Join Interview</a></p>`+"\n", link)
}
