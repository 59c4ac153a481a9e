// Package console implements the admin console workflows.
//
// A Service binds a Schema (entity shape, rules, collection view, page size)
// to a record store. One generic Service serves users, vendors, products,
// links and descriptions:
//
//	deps := console.NewDeps(store.NewMemory(), logger)
//	users := console.Users(deps)
//	id, err := users.Create(ctx, form)
//
// A Screen drives one list screen: it holds the visible list, its page
// cursor and the editor state machine
// (Idle → Editing → Validating → Persisting → Idle, or Invalid → Editing).
package console
