package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"prodtrack/internal/apperr"
	"prodtrack/internal/logger"

	"github.com/gin-gonic/gin"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return env
}

func TestRespondErrorMapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
		reason string
	}{
		{apperr.NotFound("Shot not found"), http.StatusNotFound, "not_found", ""},
		{fmt.Errorf("wrap: %w", apperr.Conflict("Organization already exists")), http.StatusConflict, "conflict", ""},
		{apperr.Invalid(apperr.ReasonCrossProjectAssignment, "nope"), http.StatusBadRequest, "validation_failed", "cross_project_assignment"},
		{apperr.Denied("You are not a member of this project"), http.StatusForbidden, "forbidden", ""},
		{apperr.Credentials("Incorrect username or password"), http.StatusUnauthorized, "unauthorized", ""},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		RespondError(c, logger.Nop(), tc.err)

		if w.Code != tc.status {
			t.Fatalf("%v: status want=%d got=%d", tc.err, tc.status, w.Code)
		}
		env := decode(t, w)
		if env.Error.Code != tc.code || env.Error.Reason != tc.reason {
			t.Fatalf("%v: unexpected envelope %+v", tc.err, env.Error)
		}
		if !c.IsAborted() {
			t.Fatalf("%v: context not aborted", tc.err)
		}
	}
}

func TestRespondErrorHidesUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	RespondError(c, logger.Nop(), errors.New("pq: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", w.Code)
	}
	if env := decode(t, w); env.Error.Message != "internal server error" {
		t.Fatalf("leaked message: %q", env.Error.Message)
	}
}
