package auth

// The store's rol enum predates this service and uses ('cliente','staff','admin'),
// while the API exposes ('user','admin'). The mapping is kept as an explicit
// table so neither side leaks into the other.

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var dbToAPIRole = map[string]string{
	"cliente": RoleUser,
	"staff":   RoleAdmin,
	"admin":   RoleAdmin,
}

var apiToDBRole = map[string]string{
	RoleUser:  "cliente",
	RoleAdmin: "admin",
}

// APIRole translates a stored rol value into its API representation.
// Unknown values pass through unchanged.
func APIRole(dbRole string) string {
	if r, ok := dbToAPIRole[dbRole]; ok {
		return r
	}
	return dbRole
}

// DBRole translates an API role into the value the store accepts.
func DBRole(apiRole string) string {
	if r, ok := apiToDBRole[apiRole]; ok {
		return r
	}
	return apiRole
}
