package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btto/orgaccess/internal/access"
)

func TestRespondErrorMapsDomainErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"not found", fmt.Errorf("directory: user 4: %w", access.ErrNotFound), http.StatusNotFound, "directory: user 4: access: not found"},
		{"invalid", fmt.Errorf("access: department right 99: %w", access.ErrInvalidArgument), http.StatusBadRequest, "access: department right 99: access: invalid argument"},
		{"task", fmt.Errorf("jobs: task abc: %w", ErrNotFound), http.StatusNotFound, "jobs: task abc: resource not found"},
		{"other", errors.New("pg down"), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondError(rr, tc.err)

			require.Equal(t, tc.status, rr.Code)
			assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
			var body ProblemDetail
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Status)
			assert.Equal(t, tc.detail, body.Detail)
		})
	}
}
