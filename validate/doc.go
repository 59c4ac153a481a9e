// Package validate provides field-level form validation.
//
// A Ruleset maps field names to ordered rules. Each rule inspects the raw
// form values submitted for a field and returns a message, or "" when the
// values are acceptable. Fields without rules always validate.
//
//	users := validate.New().
//	    Add("name", validate.Required("Name is required")).
//	    Add("email", validate.Email("Valid email is required"))
//
//	if errs := users.All(form); len(errs) > 0 {
//	    // errs["email"] == "Valid email is required"
//	}
package validate
