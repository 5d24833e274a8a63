// Package contact implements the agency site contact form: the form model
// and its validation rules, the submission lifecycle with rate limiting and
// delivery, the WhatsApp fallback link and the HTTP surface.
//
// A Controller holds one form session. Rendering surfaces push field edits
// with OnFieldChange and submit with OnSubmit, then redraw from the returned
// Snapshot:
//
//	limiter := ratelimiter.MustNew(ratelimiter.NewMemoryStore(), ratelimiter.DefaultConfig)
//	ctrl := contact.NewController(limiter, contact.NewEmailJSDeliverer(client),
//		contact.WithCredentials(creds),
//		contact.WithWhatsAppPhone("+8801646846514"),
//	)
//	defer ctrl.Close()
//
//	ctrl.OnFieldChange(contact.FieldEmail, "jane@example.com")
//	snap, err := ctrl.OnSubmit(ctx)
//
// Submit checks the rate limit first, then validation, then delivers. When
// the delivery credentials are incomplete the delivery is simulated.
// Errors are classified with errors.Is against ErrRateLimited,
// ErrInvalidForm and ErrDeliveryFailed.
//
// Handler serves the same flow as JSON under /contact, creating a
// Controller per request with the limiter scoped to the visitor.
package contact
