// Package domain defines the console's record types and their forms.
//
// Users and vendors share the "users" collection and are told apart by the
// "type" discriminator. At this layer they are distinct types: User has
// Kind() == KindUser and Vendor has Kind() == KindBusiness.
//
// Each type converts between three shapes: the submitted form (url.Values),
// the stored document (store.Fields) and the typed entity.
package domain

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jacentio/vendoradmin/store"
	"github.com/jacentio/vendoradmin/validate"
)

// Collection names.
const (
	Users        = "users"
	Products     = "products"
	Links        = "links"
	Descriptions = "lists"
)

// Discriminator and foreign key fields.
const (
	TypeField     = "type"
	VendorIDField = "vendorId"
)

// Page sizes per list screen.
const (
	UserPageSize        = 10
	VendorPageSize      = 5
	ProductPageSize     = 2
	LinkPageSize        = 5
	DescriptionPageSize = 5
)

// Kind is the value of the type discriminator.
type Kind string

const (
	KindUser     Kind = "user"
	KindBusiness Kind = "business"
)

// Filter returns the store filter selecting records of this kind.
func (k Kind) Filter() *store.Filter {
	return store.Where(TypeField, string(k))
}

// Entity is implemented by every record type.
type Entity interface {
	Key() string
	Form() url.Values
}

// trimmed returns the trimmed first value of a form field.
func trimmed(form url.Values, field string) string {
	return strings.TrimSpace(form.Get(field))
}

// blank returns an empty form with the given fields.
func blank(fields ...string) url.Values {
	form := make(url.Values, len(fields))
	for _, f := range fields {
		form.Set(f, "")
	}
	return form
}

// User is an end-user record.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Age     int    `json:"age"`
}

// Kind implements the tagged variant.
func (User) Kind() Kind { return KindUser }

// Key returns the user's id.
func (u User) Key() string { return u.ID }

// Form returns the editable form of the user.
func (u User) Form() url.Values {
	form := url.Values{}
	form.Set("name", u.Name)
	form.Set("email", u.Email)
	form.Set("phone", u.Phone)
	form.Set("address", u.Address)
	form.Set("age", strconv.Itoa(u.Age))
	form.Set(TypeField, string(KindUser))
	return form
}

// BlankUser returns the form for a new user.
func BlankUser() url.Values {
	form := blank("name", "email", "phone", "address", "age")
	form.Set(TypeField, string(KindUser))
	return form
}

// UserRules returns the user form rules.
func UserRules() *validate.Ruleset {
	return validate.New().
		Add("name", validate.Required("Name is required")).
		Add("email", validate.Email("Valid email is required")).
		Add("phone", validate.Digits(10, 15, "Phone must be 10-15 digits")).
		Add("address", validate.Required("Address is required")).
		Add("age", validate.PositiveInt("Valid age is required"))
}

// UserFields converts a validated form to stored fields.
func UserFields(form url.Values) store.Fields {
	age, _ := strconv.Atoi(trimmed(form, "age"))
	return store.Fields{
		"name":    trimmed(form, "name"),
		"email":   form.Get("email"),
		"phone":   form.Get("phone"),
		"address": trimmed(form, "address"),
		"age":     age,
	}
}

// UserFromRecord decodes a stored user.
func UserFromRecord(rec store.Record) User {
	return User{
		ID:      rec.ID,
		Name:    rec.Fields.String("name"),
		Email:   rec.Fields.String("email"),
		Phone:   rec.Fields.String("phone"),
		Address: rec.Fields.String("address"),
		Age:     rec.Fields.Int("age"),
	}
}

// Vendor is a business record.
type Vendor struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
	OwnerName    string `json:"ownerName"`
	GSTNumber    string `json:"gstNumber"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
}

// Kind implements the tagged variant.
func (Vendor) Kind() Kind { return KindBusiness }

// Key returns the vendor's id.
func (v Vendor) Key() string { return v.ID }

// Form returns the editable form of the vendor.
func (v Vendor) Form() url.Values {
	form := url.Values{}
	form.Set("businessName", v.BusinessName)
	form.Set("ownerName", v.OwnerName)
	form.Set("gstNumber", v.GSTNumber)
	form.Set("contactEmail", v.ContactEmail)
	form.Set("contactPhone", v.ContactPhone)
	form.Set("address", v.Address)
	form.Set(TypeField, string(KindBusiness))
	return form
}

// BlankVendor returns the form for a new vendor.
func BlankVendor() url.Values {
	form := blank("businessName", "ownerName", "gstNumber", "contactEmail", "contactPhone", "address")
	form.Set(TypeField, string(KindBusiness))
	return form
}

// VendorRules returns the vendor form rules.
func VendorRules() *validate.Ruleset {
	return validate.New().
		Add("businessName", validate.Required("Business name is required")).
		Add("ownerName", validate.Required("Owner name is required")).
		Add("gstNumber", validate.Digits(11, 15, "Valid GST number required")).
		Add("contactEmail", validate.Email("Valid email is required")).
		Add("contactPhone", validate.Digits(10, 15, "Valid phone required")).
		Add("address", validate.Required("Address is required"))
}

// VendorFields converts a validated form to stored fields.
func VendorFields(form url.Values) store.Fields {
	return store.Fields{
		"businessName": trimmed(form, "businessName"),
		"ownerName":    trimmed(form, "ownerName"),
		"gstNumber":    form.Get("gstNumber"),
		"contactEmail": form.Get("contactEmail"),
		"contactPhone": form.Get("contactPhone"),
		"address":      trimmed(form, "address"),
	}
}

// VendorFromRecord decodes a stored vendor.
func VendorFromRecord(rec store.Record) Vendor {
	return Vendor{
		ID:           rec.ID,
		BusinessName: rec.Fields.String("businessName"),
		OwnerName:    rec.Fields.String("ownerName"),
		GSTNumber:    rec.Fields.String("gstNumber"),
		ContactEmail: rec.Fields.String("contactEmail"),
		ContactPhone: rec.Fields.String("contactPhone"),
		Address:      rec.Fields.String("address"),
	}
}

// Product is an item sold by a vendor.
type Product struct {
	ID          string   `json:"id"`
	VendorID    string   `json:"vendorId"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// Key returns the product's id.
func (p Product) Key() string { return p.ID }

// Form returns the editable form of the product. Images are repeated values.
func (p Product) Form() url.Values {
	form := url.Values{}
	form.Set("name", p.Name)
	form.Set("price", strconv.FormatFloat(p.Price, 'f', -1, 64))
	form.Set("category", p.Category)
	form.Set("description", p.Description)
	form["images"] = append([]string(nil), p.Images...)
	return form
}

// BlankProduct returns the form for a new product, with one empty image slot.
func BlankProduct() url.Values {
	return blank("name", "price", "category", "description", "images")
}

// ProductRules returns the product form rules.
func ProductRules() *validate.Ruleset {
	return validate.New().
		Add("name", validate.Required("Required")).
		Add("price", validate.Number("Valid price required")).
		Add("category", validate.Required("Required")).
		Add("description", validate.Required("Required")).
		Add("images", validate.AnyNonBlank("At least one image link required"))
}

// ProductFields converts a validated form to stored fields.
// Blank image entries are dropped; vendorId is pinned by the collection view.
func ProductFields(form url.Values) store.Fields {
	price, _ := strconv.ParseFloat(trimmed(form, "price"), 64)
	return store.Fields{
		"name":        trimmed(form, "name"),
		"price":       price,
		"category":    trimmed(form, "category"),
		"description": trimmed(form, "description"),
		"images":      validate.NonBlank(form["images"]),
	}
}

// ProductFromRecord decodes a stored product.
func ProductFromRecord(rec store.Record) Product {
	return Product{
		ID:          rec.ID,
		VendorID:    rec.Fields.String(VendorIDField),
		Name:        rec.Fields.String("name"),
		Price:       rec.Fields.Float("price"),
		Category:    rec.Fields.String("category"),
		Description: rec.Fields.String("description"),
		Images:      rec.Fields.Strings("images"),
	}
}

// Link is a URL attached to a user.
type Link struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Key returns the link's id.
func (l Link) Key() string { return l.ID }

// Form returns the editable form of the link.
func (l Link) Form() url.Values {
	return url.Values{"url": {l.URL}}
}

// BlankLink returns the form for a new link.
func BlankLink() url.Values {
	return blank("url")
}

// LinkRules returns the link form rules.
func LinkRules() *validate.Ruleset {
	return validate.New().
		Add("url",
			validate.Required("Link cannot be empty"),
			validate.HTTPURL("Please enter a valid URL (http/https)"),
		)
}

// LinkFields converts a validated form to stored fields.
func LinkFields(form url.Values) store.Fields {
	return store.Fields{"url": trimmed(form, "url")}
}

// LinkFromRecord decodes a stored link.
func LinkFromRecord(rec store.Record) Link {
	return Link{ID: rec.ID, URL: rec.Fields.String("url")}
}

// Description is a free-text note attached to a user.
type Description struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Key returns the description's id.
func (d Description) Key() string { return d.ID }

// Form returns the editable form of the description.
func (d Description) Form() url.Values {
	return url.Values{"text": {d.Text}}
}

// BlankDescription returns the form for a new description.
func BlankDescription() url.Values {
	return blank("text")
}

// DescriptionRules returns the description form rules.
func DescriptionRules() *validate.Ruleset {
	return validate.New().
		Add("text", validate.Required("Description cannot be empty"))
}

// DescriptionFields converts a validated form to stored fields.
func DescriptionFields(form url.Values) store.Fields {
	return store.Fields{"text": trimmed(form, "text")}
}

// DescriptionFromRecord decodes a stored description.
func DescriptionFromRecord(rec store.Record) Description {
	return Description{ID: rec.ID, Text: rec.Fields.String("text")}
}
