// Package catalog declares the collections persisted by qaforge.
package catalog

// Collection names.
const (
	Projects       = "projects"
	TestPlans      = "testplans"
	TestSteps      = "teststeps"
	TestExecutions = "teststepexecutions"
	Permissions    = "permissions"
	Roles          = "roles"
	Users          = "users"
)

// Collection describes one collection and its unique fields.
type Collection struct {
	Name   string
	Unique []string
}

var collections = []Collection{
	{Name: Projects},
	{Name: TestPlans},
	{Name: TestSteps},
	{Name: TestExecutions},
	{Name: Permissions, Unique: []string{"key", "name"}},
	{Name: Roles, Unique: []string{"key", "name"}},
	{Name: Users, Unique: []string{"email"}},
}

// All returns every declared collection.
func All() []Collection {
	out := make([]Collection, len(collections))
	copy(out, collections)
	return out
}

// Lookup returns the declaration for name.
func Lookup(name string) (Collection, bool) {
	for _, c := range collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}
