package contact

import (
	"net/url"
	"strings"

	"github.com/dmitrymomot/agencysite/pkg/sanitizer"
)

// GreetingText is the prefilled message of the generic WhatsApp link.
const GreetingText = "Hello there! I would like to discuss about a Project."

var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s the way browsers do for a query value.
func encodeURIComponent(s string) string {
	return uriComponentFixups.Replace(url.QueryEscape(s))
}

var phoneCleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// WhatsAppMessage renders the inquiry as chat text. Form values are stored
// HTML-escaped, so they are converted back to plain text first.
func WhatsAppMessage(f Form) string {
	plain := func(field Field) string { return sanitizer.PlainText(f.Get(field)) }

	var b strings.Builder
	b.WriteString("New Project Inquiry:\n")
	b.WriteString("Name: " + plain(FieldFirstName) + " " + plain(FieldLastName) + "\n")
	b.WriteString("Email: " + plain(FieldEmail) + "\n")
	b.WriteString("Company: " + plain(FieldCompany) + "\n")
	b.WriteString("Service: " + plain(FieldService) + "\n")
	b.WriteString("Budget: " + plain(FieldBudget) + "\n")
	b.WriteString("\nProject Details:\n")
	b.WriteString(plain(FieldProjectDetails))
	return b.String()
}

// WhatsAppURL builds a wa.me deep link prefilled with the inquiry.
func WhatsAppURL(phone string, f Form) string {
	return chatURL(phone, WhatsAppMessage(f))
}

// GreetingURL builds a wa.me deep link prefilled with GreetingText.
func GreetingURL(phone string) string {
	return chatURL(phone, GreetingText)
}

func chatURL(phone, text string) string {
	return "https://wa.me/" + phoneCleaner.Replace(phone) + "?text=" + encodeURIComponent(text)
}
