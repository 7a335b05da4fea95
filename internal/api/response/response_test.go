// internal/api/response/response_test.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newthinker/ichimoku-dashboard/internal/core"
)

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"hello": "world"}

	JSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected application/json content type")
	}

	var resp SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data == nil {
		t.Error("expected data in response")
	}
	if resp.Meta.Timestamp.IsZero() {
		t.Error("expected timestamp in meta")
	}
}

func TestError_WithCoreError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, errors.New(`unknown source filter "bonds"`)))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "BAD_REQUEST" {
		t.Errorf("expected BAD_REQUEST, got %s", resp.Error.Code)
	}
	if resp.Error.Cause != `unknown source filter "bonds"` {
		t.Errorf("unexpected cause %q", resp.Error.Cause)
	}
}

func TestError_WithStandardError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusInternalServerError, errors.New("boom"))

	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", resp.Error.Code)
	}
	if resp.Error.Cause != "" {
		t.Error("plain errors must not leak their text")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{core.WrapError(core.ErrBadRequest, nil), http.StatusBadRequest},
		{core.ErrUnauthorized, http.StatusUnauthorized},
		{core.WrapError(core.ErrNoData, errors.New("missing")), http.StatusNotFound},
		{core.WrapError(core.ErrSnapshotInvalid, nil), http.StatusBadGateway},
		{core.WrapError(core.ErrStorageFailed, nil), http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestFail(t *testing.T) {
	w := httptest.NewRecorder()

	Fail(w, core.WrapError(core.ErrNoData, nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
