// Package emailjs is a client for the EmailJS REST API.
//
// A message is identified by a service id, a template id and the account's
// public key; the template parameters are a flat string map rendered by the
// EmailJS template:
//
//	client := emailjs.New(emailjs.Config{ServiceID: "service_x", TemplateID: "template_y", PublicKey: "pk"})
//	err := client.Send(ctx, emailjs.Message{Params: map[string]string{"from_name": "Ada"}})
//
// Non-2xx responses are reported as *APIError wrapped with ErrSendFailed.
package emailjs
