package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jacentio/vendoradmin/console"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{console.CodeInvalid, http.StatusUnprocessableEntity},
		{console.CodeNotFound, http.StatusNotFound},
		{console.CodeParentNotFound, http.StatusNotFound},
		{console.CodeConflict, http.StatusConflict},
		{console.CodeStoreUnavailable, http.StatusServiceUnavailable},
		{console.CodeCascadeIncomplete, http.StatusInternalServerError},
		{console.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := statusFor(tt.code); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestDecodeForm(t *testing.T) {
	body := `{"name":"Ann","age":30,"price":19.99,"active":true,"images":["a","",7],"skip":null}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	form, err := decodeForm(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		field string
		want  []string
	}{
		{"name", []string{"Ann"}},
		{"age", []string{"30"}},
		{"price", []string{"19.99"}},
		{"active", []string{"true"}},
		{"images", []string{"a", "", "7"}},
	}
	for _, tt := range tests {
		if got := form[tt.field]; fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.field, tt.want, got)
		}
	}
	if _, ok := form["skip"]; ok {
		t.Error("expected null field to be skipped")
	}
}

func TestDecodeFormTooLarge(t *testing.T) {
	big := `{"name":"` + string(bytes.Repeat([]byte("a"), maxBodySize)) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(big))
	if _, err := decodeForm(httptest.NewRecorder(), req); err == nil {
		t.Error("expected error for oversized body")
	}
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec, status: http.StatusOK}
	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)
	if w.status != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.status)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected recorder 201, got %d", rec.Code)
	}
}
