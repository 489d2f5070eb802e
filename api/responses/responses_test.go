package responses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
)

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !body.Success || body.Data["hello"] != "world" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestWriteList_IncludesCount(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteList(rec, []int{1, 2}, 17)

	var body struct {
		Success bool `json:"success"`
		Count   *int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Count == nil || *body.Count != 17 {
		t.Fatalf("count = %v, want 17", body.Count)
	}
}

func TestWriteError_TypedCode(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInsufficientStock, "only 2 left").
		WithDetails(map[string]string{"sku": "RG-22-10"})
	WriteError(context.Background(), nil, rec, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Success bool              `json:"success"`
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Success || body.Code != "INSUFFICIENT_STOCK" || body.Message != "only 2 left" {
		t.Fatalf("unexpected body %+v", body)
	}
	if body.Errors["sku"] != "RG-22-10" {
		t.Fatalf("details not passed through: %+v", body.Errors)
	}
}

func TestWriteError_InternalHidesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInternal, "pg connection pool exhausted on shard 3")
	WriteError(context.Background(), nil, rec, err)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal message leaked: %q", body.Message)
	}
}

func TestWriteError_UntypedBecomesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, context.DeadlineExceeded)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
