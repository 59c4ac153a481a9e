package console

import (
	"log/slog"

	"github.com/jacentio/vendoradmin/domain"
	"github.com/jacentio/vendoradmin/store"
)

// Deps are the collaborators shared by every Service.
type Deps struct {
	Store    store.Store
	Cascader *store.Cascader
	Logger   *slog.Logger
}

// NewDeps wires a store with the console's relationship registry.
// A nil logger uses slog.Default().
func NewDeps(s store.Store, logger *slog.Logger) Deps {
	if logger == nil {
		logger = slog.Default()
	}
	return Deps{
		Store:    s,
		Cascader: store.NewCascader(s, NewRegistry(), logger),
		Logger:   logger,
	}
}

// NewRegistry returns the console's parent/child relationships.
// Products reference their vendor by vendorId; links and descriptions are
// sub-collections of a users record.
func NewRegistry() *store.Registry {
	r := store.NewRegistry()
	r.Register(store.Relationship{
		ParentCollection: domain.Users,
		ChildCollection:  domain.Products,
		ParentKeyAttr:    domain.VendorIDField,
	})
	r.Register(store.Relationship{
		ParentCollection: domain.Users,
		ChildCollection:  domain.Links,
		Sub:              true,
	})
	r.Register(store.Relationship{
		ParentCollection: domain.Users,
		ChildCollection:  domain.Descriptions,
		Sub:              true,
	})
	return r
}
