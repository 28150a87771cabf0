package recording

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	v1 "github.com/projecteax/mozgnamaxa/internal/api/v1"
	httperr "github.com/projecteax/mozgnamaxa/internal/core/errors"
	"github.com/projecteax/mozgnamaxa/internal/core/storage/memory"
	"github.com/projecteax/mozgnamaxa/internal/identity"
	storagemocks "github.com/projecteax/mozgnamaxa/internal/mocks/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(svc *Service) *gin.Engine {
	r := gin.New()
	r.Use(identity.Middleware(""))
	svc.RegisterRoutes(r)
	return r
}

func doRequest(r *gin.Engine, method, path, learnerID, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if learnerID != "" {
		req.Header.Set(identity.DefaultHeader, learnerID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecordHandler(t *testing.T) {
	store := memory.NewStore()
	_, err := store.EnsureProfile(context.Background(), "learner-1", "")
	require.NoError(t, err)
	r := newTestRouter(newTestService(store, nil))

	tests := []struct {
		name       string
		learnerID  string
		body       string
		wantStatus int
		wantBody   string
		wantError  string
	}{
		{
			name:       "recorded",
			learnerID:  "learner-1",
			body:       `{"game_id":"maze-game","season":"wiosna","completion_time_ms":4200}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"recorded":true}`,
		},
		{
			name:       "no identity",
			body:       `{"game_id":"maze-game","season":"wiosna"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"recorded":false,"reason":"no_identity"}`,
		},
		{
			name:       "no profile",
			learnerID:  "learner-2",
			body:       `{"game_id":"maze-game","season":"wiosna"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"recorded":false,"reason":"profile_not_found"}`,
		},
		{
			name:       "unknown season",
			learnerID:  "learner-1",
			body:       `{"game_id":"maze-game","season":"monsun"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  httperr.HttpUnknownSeasonError,
		},
		{
			name:       "missing game",
			learnerID:  "learner-1",
			body:       `{"season":"lato"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  httperr.HttpInvalidCompletionError,
		},
		{
			name:       "malformed json",
			learnerID:  "learner-1",
			body:       `{"game_id":`,
			wantStatus: http.StatusBadRequest,
			wantError:  httperr.HttpInvalidJsonError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/v1/completions", tc.learnerID, tc.body)
			require.Equal(t, tc.wantStatus, w.Code)

			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, w.Body.String())
				return
			}
			var resp httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantError, resp.ErrorType)
		})
	}
}

func TestRecordHandler_StoreUnavailable(t *testing.T) {
	store := storagemocks.NewCompletionStore(t)
	store.EXPECT().AppendCompletion(mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
	r := newTestRouter(newTestService(store, nil))

	w := doRequest(r, http.MethodPost, "/v1/completions", "learner-1", `{"game_id":"maze-game","season":"zima"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"recorded":false,"reason":"store_unavailable"}`, w.Body.String())
}

func TestRecordHandler_BodyTooLarge(t *testing.T) {
	store := storagemocks.NewCompletionStore(t)
	r := newTestRouter(newTestService(store, nil))

	body := `{"game_id":"` + strings.Repeat("a", 1024*1024+1) + `","season":"lato"}`
	w := doRequest(r, http.MethodPost, "/v1/completions", "learner-1", body)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestEnsureProfileHandler(t *testing.T) {
	store := memory.NewStore()
	r := newTestRouter(newTestService(store, nil))

	t.Run("no identity", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/v1/profile", "", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("creates without body", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/v1/profile", "learner-1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var p v1.Profile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, "learner-1", p.LearnerID)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("sets display name", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/v1/profile", "learner-1", `{"display_name":"Ola"}`)
		require.Equal(t, http.StatusOK, w.Code)

		p, err := store.ResolveProfile(context.Background(), "learner-1")
		require.NoError(t, err)
		assert.Equal(t, "Ola", p.DisplayName)
	})

	t.Run("store failure", func(t *testing.T) {
		failing := storagemocks.NewCompletionStore(t)
		failing.EXPECT().EnsureProfile(mock.Anything, "learner-9", "").Return(nil, errors.New("down")).Once()

		w := doRequest(newTestRouter(newTestService(failing, nil)), http.MethodPut, "/v1/profile", "learner-9", "")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
