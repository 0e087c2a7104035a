package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/circulation/pkg/validator"
)

type sampleStruct struct {
	ItemID string `validate:"required,uuid"`
	Note   string `validate:"required,min=1,max=10"`
	Email  string `validate:"omitempty,email"`
}

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{
		ItemID: "550e8400-e29b-41d4-a716-446655440000",
		Note:   "hello",
	}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleStruct{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestFormatValidationErrors_required(t *testing.T) {
	s := sampleStruct{}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["ItemID"] != "This field is required" {
		t.Errorf("unexpected ItemID message: %q", m["ItemID"])
	}
	if m["Note"] != "This field is required" {
		t.Errorf("unexpected Note message: %q", m["Note"])
	}
}

func TestFormatValidationErrors_uuid(t *testing.T) {
	s := sampleStruct{ItemID: "not-a-uuid", Note: "ok"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["ItemID"] != "Must be a valid UUID" {
		t.Errorf("unexpected ItemID message: %q", m["ItemID"])
	}
}

func TestFormatValidationErrors_min(t *testing.T) {
	s := sampleStruct{ItemID: "550e8400-e29b-41d4-a716-446655440000", Note: ""}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	// empty string fails "required" before "min"
	if _, ok := m["Note"]; !ok {
		t.Error("expected Note validation error")
	}
}

func TestFormatValidationErrors_max(t *testing.T) {
	s := sampleStruct{ItemID: "550e8400-e29b-41d4-a716-446655440000", Note: "12345678901"} // 11 chars > max=10
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Note"] != "Maximum length is 10" {
		t.Errorf("unexpected Note message: %q", m["Note"])
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

// --- ValidateRequest ---

type reserveReq struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
	Note   string `json:"note"    validate:"omitempty,max=500"`
}

func TestValidateRequest_valid(t *testing.T) {
	body := `{"item_id":"550e8400-e29b-41d4-a716-446655440000","note":"large print please"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[reserveReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Note != "large print please" {
		t.Errorf("unexpected Note: %q", req.Note)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[reserveReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_missingField(t *testing.T) {
	body := `{"note":"no item"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[reserveReq](w, r)
	if ok {
		t.Fatal("expected ok=false for missing item_id")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Validation failed") {
		t.Errorf("expected 'Validation failed' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_invalidUUID(t *testing.T) {
	body := `{"item_id":"not-uuid","note":"x"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[reserveReq](w, r)
	if ok {
		t.Fatal("expected ok=false for invalid UUID")
	}
	if !strings.Contains(w.Body.String(), "UUID") {
		t.Errorf("expected UUID error in body, got: %s", w.Body.String())
	}
}
