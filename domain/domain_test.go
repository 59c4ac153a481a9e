package domain

import (
	"net/url"
	"testing"

	"github.com/jacentio/vendoradmin/store"
)

func validUserForm() url.Values {
	return url.Values{
		"name":    {" Ada Lovelace "},
		"email":   {"ada@example.com"},
		"phone":   {"1234567890"},
		"address": {"12 St James's Square"},
		"age":     {"36"},
		"type":    {"user"},
	}
}

func TestUserRules_Messages(t *testing.T) {
	rules := UserRules()

	tests := []struct {
		field, value, expected string
	}{
		{"email", "a@b.com", ""},
		{"email", "bad", "Valid email is required"},
		{"email", "", "Valid email is required"},
		{"phone", "12345", "Phone must be 10-15 digits"},
		{"phone", "1234567890", ""},
		{"name", "", "Name is required"},
		{"address", " ", "Address is required"},
		{"age", "0", "Valid age is required"},
		{"age", "x", "Valid age is required"},
		{"age", "30", ""},
		{"type", "anything", ""},
	}

	for _, tt := range tests {
		if got := rules.Field(tt.field, tt.value); got != tt.expected {
			t.Errorf("user %s=%q: expected %q, got %q", tt.field, tt.value, tt.expected, got)
		}
	}
}

func TestUserRules_BlankFormFailsEveryField(t *testing.T) {
	errs := UserRules().All(BlankUser())
	for _, f := range []string{"name", "email", "phone", "address", "age"} {
		if errs[f] == "" {
			t.Errorf("expected error for %s", f)
		}
	}
}

func TestUserFields(t *testing.T) {
	fields := UserFields(validUserForm())

	if fields["name"] != "Ada Lovelace" {
		t.Errorf("expected trimmed name, got %q", fields["name"])
	}
	if fields["age"] != 36 {
		t.Errorf("expected age 36, got %v", fields["age"])
	}
	if _, ok := fields[TypeField]; ok {
		t.Error("expected type to be left to the collection view")
	}
}

func TestUser_RoundTrip(t *testing.T) {
	rec := store.Record{ID: "u1", Fields: UserFields(validUserForm())}
	u := UserFromRecord(rec)

	if u.ID != "u1" || u.Name != "Ada Lovelace" || u.Age != 36 {
		t.Errorf("unexpected user %+v", u)
	}
	if u.Kind() != KindUser {
		t.Errorf("expected KindUser, got %q", u.Kind())
	}

	form := u.Form()
	if form.Get(TypeField) != "user" || form.Get("age") != "36" {
		t.Errorf("unexpected form %v", form)
	}
	if errs := UserRules().All(form); len(errs) != 0 {
		t.Errorf("expected decoded user to validate, got %v", errs)
	}
}

func TestVendorRules_Messages(t *testing.T) {
	rules := VendorRules()

	tests := []struct {
		field, value, expected string
	}{
		{"businessName", "", "Business name is required"},
		{"ownerName", "", "Owner name is required"},
		{"gstNumber", "1234567890", "Valid GST number required"},
		{"gstNumber", "12345678901", ""},
		{"contactEmail", "nope", "Valid email is required"},
		{"contactPhone", "12ab567890", "Valid phone required"},
		{"contactPhone", "123456789012345", ""},
		{"address", "", "Address is required"},
	}

	for _, tt := range tests {
		if got := rules.Field(tt.field, tt.value); got != tt.expected {
			t.Errorf("vendor %s=%q: expected %q, got %q", tt.field, tt.value, tt.expected, got)
		}
	}
}

func TestVendor_Kind(t *testing.T) {
	v := VendorFromRecord(store.Record{ID: "v1", Fields: store.Fields{"businessName": "Acme", "type": "business"}})

	if v.Kind() != KindBusiness || v.BusinessName != "Acme" {
		t.Errorf("unexpected vendor %+v", v)
	}
	if BlankVendor().Get(TypeField) != "business" {
		t.Error("expected blank vendor form to carry the business type")
	}
	if f := KindBusiness.Filter(); f.Field != "type" || f.Value != "business" {
		t.Errorf("unexpected filter %+v", f)
	}
}

func TestProductRules_Images(t *testing.T) {
	rules := ProductRules()

	form := url.Values{
		"name":        {"Racket"},
		"price":       {"19.99"},
		"category":    {"Sport"},
		"description": {"Light"},
		"images":      {"", "  "},
	}
	errs := rules.All(form)
	if errs["images"] != "At least one image link required" {
		t.Errorf("expected images error, got %v", errs)
	}
	if len(errs) != 1 {
		t.Errorf("expected only the images error, got %v", errs)
	}

	form["images"] = []string{"", "https://img.example.com/1.png"}
	if errs := rules.All(form); len(errs) != 0 {
		t.Errorf("expected valid product, got %v", errs)
	}
}

func TestProductRules_Price(t *testing.T) {
	rules := ProductRules()

	for _, v := range []string{"", "abc", "1,5"} {
		if got := rules.Field("price", v); got != "Valid price required" {
			t.Errorf("expected %q to be rejected, got %q", v, got)
		}
	}
	if got := rules.Field("name", ""); got != "Required" {
		t.Errorf("expected 'Required', got %q", got)
	}
}

func TestProductFields_FiltersBlankImages(t *testing.T) {
	fields := ProductFields(url.Values{
		"name":   {"Racket"},
		"price":  {" 19.5 "},
		"images": {"", "a.png", " ", "b.png"},
	})

	images, ok := fields["images"].([]string)
	if !ok || len(images) != 2 || images[0] != "a.png" || images[1] != "b.png" {
		t.Errorf("expected [a.png b.png], got %v", fields["images"])
	}
	if fields["price"] != 19.5 {
		t.Errorf("expected price 19.5, got %v", fields["price"])
	}
}

func TestProduct_FormRoundTrip(t *testing.T) {
	p := ProductFromRecord(store.Record{ID: "p1", Fields: store.Fields{
		"name":        "Racket",
		"price":       19.5,
		"images":      []any{"a.png", "b.png"},
		"vendorId":    "v1",
		"category":    "Sport",
		"description": "Light",
	}})

	if p.VendorID != "v1" || len(p.Images) != 2 {
		t.Errorf("unexpected product %+v", p)
	}
	form := p.Form()
	if form.Get("price") != "19.5" || len(form["images"]) != 2 {
		t.Errorf("unexpected form %v", form)
	}
}

func TestLinkRules(t *testing.T) {
	rules := LinkRules()

	if got := rules.Field("url", ""); got != "Link cannot be empty" {
		t.Errorf("expected empty message, got %q", got)
	}
	if got := rules.Field("url", "example.com"); got != "Please enter a valid URL (http/https)" {
		t.Errorf("expected URL message, got %q", got)
	}
	if got := rules.Field("url", "https://example.com"); got != "" {
		t.Errorf("expected valid URL, got %q", got)
	}
}

func TestDescriptionRules(t *testing.T) {
	if got := DescriptionRules().Field("text", "  "); got != "Description cannot be empty" {
		t.Errorf("expected empty message, got %q", got)
	}
	d := DescriptionFromRecord(store.Record{ID: "d1", Fields: DescriptionFields(url.Values{"text": {" note "}})})
	if d.Text != "note" || d.Key() != "d1" {
		t.Errorf("unexpected description %+v", d)
	}
}
