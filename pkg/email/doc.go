// Package email provides a provider-agnostic interface for sending
// transactional emails.
//
// Two implementations are available:
//   - NewPostmarkClient delivers through Postmark, either as raw HTML or
//     through a server-side template (TemplateAlias + TemplateModel).
//   - NewDevSender writes each email to a directory for local development.
//
// Both validate SendEmailParams before doing any work and report delivery
// problems wrapped in ErrFailedToSendEmail:
//
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:        cfg.InboxEmail,
//		ReplyTo:       visitorEmail,
//		TemplateAlias: "contact-inquiry",
//		TemplateModel: map[string]any{"from_name": "Ada Lovelace"},
//	})
//	if errors.Is(err, email.ErrInvalidParams) {
//		// caller bug
//	}
package email
