// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives the decoded request value and returns a Response
// that renders itself:
//
//	type submitRequest struct {
//		Email string `json:"email"`
//	}
//
//	func submit(r *http.Request, req submitRequest) handler.Response {
//		if req.Email == "" {
//			return handler.JSONError(handler.ErrUnprocessableEntity)
//		}
//		return handler.JSON(map[string]string{"ok": req.Email})
//	}
//
//	mux.Post("/submit", handler.Wrap(submit, handler.WithBinder(handler.BindJSON(1<<16))))
//
// JSON responses share one envelope: {"data": ..., "meta": ..., "error":
// {"code", "message", "details"}}. Errors that are HTTPError keep their
// status and key; validator.ValidationErrors become 422 with per-field
// details; anything else is a 500 whose message is not leaked.
package handler
