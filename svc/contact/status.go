package contact

// StatusKind tags a status banner.
type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Banner texts shown to the visitor.
const (
	MessageCooldown = "Too many attempts. Please wait a few minutes before trying again."
	MessageInvalid  = "Please fix the errors in the form before submitting."
	MessageSuccess  = "Thank you! Your message has been sent successfully. We'll get back to you soon."
	MessageFailure  = "Failed to send message. Please try again or contact us directly via WhatsApp."
)

// Status is the banner displayed above the form. AlternateURL is set on
// delivery failures when a fallback channel is configured.
type Status struct {
	Kind         StatusKind `json:"type"`
	Message      string     `json:"message"`
	AlternateURL string     `json:"alternateUrl,omitempty"`
}

// Snapshot is everything a rendering surface needs to draw the form.
type Snapshot struct {
	Form         Form             `json:"form"`
	Errors       map[Field]string `json:"errors"`
	Status       *Status          `json:"status"`
	Submitting   bool             `json:"submitting"`
	SubmissionID string           `json:"submissionId,omitempty"`
}
