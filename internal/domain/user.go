package domain

// User is a platform account: end user, field vendor, or admin. Accounts are
// provisioned by the external auth system; this core only reads them for
// authorization checks and notification addressing.
type User struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      Role   `json:"role"`
	CreatedOn string `json:"created_on"`
}
