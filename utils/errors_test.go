package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"
)

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func serveAndDecode(t *testing.T, handler iris.Handler) (int, envelope) {
	t.Helper()
	app := iris.New()
	app.Get("/always-fails", handler)
	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/always-fails", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	var body envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, resp.Body.String())
	}
	return resp.Code, body
}

// Every error helper must produce the same {success, error, message} envelope.
func TestErrorHelpersShareEnvelope(t *testing.T) {
	cases := []struct {
		name       string
		handler    iris.Handler
		wantStatus int
		wantCode   string
	}{
		{"not found", CreateNotFound, http.StatusNotFound, "not_found"},
		{"internal", CreateInternalServerError, http.StatusInternalServerError, "server_error"},
		{"email taken", CreateEmailAlreadyRegistered, http.StatusConflict, "email_taken"},
		{"conflict", func(ctx iris.Context) {
			CreateConflict(ctx, "overlapping_reservation", "This time slot is already booked")
		}, http.StatusConflict, "overlapping_reservation"},
		{"bad body", func(ctx iris.Context) {
			HandleValidationErrors(json.Unmarshal([]byte("{"), &struct{}{}), ctx)
		}, http.StatusBadRequest, "invalid_payload"},
	}

	for _, tc := range cases {
		status, body := serveAndDecode(t, tc.handler)
		if status != tc.wantStatus {
			t.Errorf("%s: status = %d, want %d", tc.name, status, tc.wantStatus)
		}
		if body.Success {
			t.Errorf("%s: success must be false", tc.name)
		}
		if body.Error != tc.wantCode {
			t.Errorf("%s: error = %q, want %q", tc.name, body.Error, tc.wantCode)
		}
		if body.Message == "" {
			t.Errorf("%s: message must not be empty", tc.name)
		}
	}
}
