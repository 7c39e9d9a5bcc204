package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding error body %q: %v", w.Body.String(), err)
	}
	return envelope
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        apperrors.NewValidation("op", "Username cannot contain whitespaces"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation",
			wantMsg:    "Username cannot contain whitespaces",
		},
		{
			name:       "not found",
			err:        apperrors.NewNotFound("op", apperrors.KindAccount, "Account not found with Id: 7"),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
			wantMsg:    "Account not found with Id: 7",
		},
		{
			name:       "conflict",
			err:        apperrors.NewConflict("op", apperrors.KindAlreadySubscribed, "Account is already subscribed to this product"),
			wantStatus: http.StatusConflict,
			wantCode:   "conflict",
			wantMsg:    "Account is already subscribed to this product",
		},
		{
			name:       "internal hides details",
			err:        apperrors.Internal("op", errors.New("pq: connection reset")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal",
			wantMsg:    "internal server error",
		},
		{
			name:       "untyped error",
			err:        errors.New("pq: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal",
			wantMsg:    "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			envelope := decodeEnvelope(t, w)
			if envelope.Error.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", envelope.Error.Code, tc.wantCode)
			}
			if envelope.Error.Message != tc.wantMsg {
				t.Fatalf("message = %q, want %q", envelope.Error.Message, tc.wantMsg)
			}
		})
	}
}

func TestParseIDParamRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"abc", "-3", "0", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		if _, ok := parseIDParam(c, "id"); ok {
			t.Fatalf("parseIDParam accepted %q", raw)
		}
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status for %q = %d, want %d", raw, w.Code, http.StatusBadRequest)
		}
	}
}

func TestParseIDParamAcceptsID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, ok := parseIDParam(c, "id")
	if !ok || id != 42 {
		t.Fatalf("parseIDParam = (%d, %v), want (42, true)", id, ok)
	}
}
