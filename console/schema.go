package console

import (
	"net/url"

	"github.com/jacentio/vendoradmin/domain"
	"github.com/jacentio/vendoradmin/store"
	"github.com/jacentio/vendoradmin/validate"
)

// Schema configures a Service for one entity type.
type Schema[T domain.Entity] struct {
	// Name labels the service in logs (e.g., "users").
	Name string

	// Collection is the store view the service reads and writes.
	Collection store.Collection

	// Rules validates submitted forms.
	Rules *validate.Ruleset

	// Blank returns the form of a new entity.
	Blank func() url.Values

	// Fields converts a validated form to stored fields.
	Fields func(url.Values) store.Fields

	// Decode converts a stored record to the entity.
	Decode func(store.Record) T

	// PageSize is the list screen's page size.
	PageSize int

	// Parent is the collection whose registered children are cascaded on
	// delete. Empty for entities without children.
	Parent string
}

// Users returns the service for end-users.
func Users(deps Deps) *Service[domain.User] {
	return NewService(Schema[domain.User]{
		Name: "users",
		Collection: store.Top(deps.Store, store.Scope{
			Collection: domain.Users,
			Filter:     domain.KindUser.Filter(),
		}),
		Rules:    domain.UserRules(),
		Blank:    domain.BlankUser,
		Fields:   domain.UserFields,
		Decode:   domain.UserFromRecord,
		PageSize: domain.UserPageSize,
		Parent:   domain.Users,
	}, deps)
}

// Vendors returns the service for business records.
func Vendors(deps Deps) *Service[domain.Vendor] {
	return NewService(Schema[domain.Vendor]{
		Name: "vendors",
		Collection: store.Top(deps.Store, store.Scope{
			Collection: domain.Users,
			Filter:     domain.KindBusiness.Filter(),
		}),
		Rules:    domain.VendorRules(),
		Blank:    domain.BlankVendor,
		Fields:   domain.VendorFields,
		Decode:   domain.VendorFromRecord,
		PageSize: domain.VendorPageSize,
		Parent:   domain.Users,
	}, deps)
}

// Products returns the service for one vendor's products.
// Creates fail with store.ErrParentNotFound unless vendorID is a vendor.
func Products(deps Deps, vendorID string) *Service[domain.Product] {
	return NewService(Schema[domain.Product]{
		Name: "products",
		Collection: store.Top(deps.Store, store.Scope{
			Collection: domain.Products,
			Filter:     store.Where(domain.VendorIDField, vendorID),
			Parent: &store.ParentCheck{
				Collection: domain.Users,
				ID:         vendorID,
				Filter:     domain.KindBusiness.Filter(),
			},
		}),
		Rules:    domain.ProductRules(),
		Blank:    domain.BlankProduct,
		Fields:   domain.ProductFields,
		Decode:   domain.ProductFromRecord,
		PageSize: domain.ProductPageSize,
	}, deps)
}

// Links returns the service for one user's links.
func Links(deps Deps, userID string) *Service[domain.Link] {
	return NewService(Schema[domain.Link]{
		Name:       "links",
		Collection: store.Sub(deps.Store, domain.Users, userID, domain.Links),
		Rules:      domain.LinkRules(),
		Blank:      domain.BlankLink,
		Fields:     domain.LinkFields,
		Decode:     domain.LinkFromRecord,
		PageSize:   domain.LinkPageSize,
	}, deps)
}

// Descriptions returns the service for one user's descriptions.
func Descriptions(deps Deps, userID string) *Service[domain.Description] {
	return NewService(Schema[domain.Description]{
		Name:       "descriptions",
		Collection: store.Sub(deps.Store, domain.Users, userID, domain.Descriptions),
		Rules:      domain.DescriptionRules(),
		Blank:      domain.BlankDescription,
		Fields:     domain.DescriptionFields,
		Decode:     domain.DescriptionFromRecord,
		PageSize:   domain.DescriptionPageSize,
	}, deps)
}
