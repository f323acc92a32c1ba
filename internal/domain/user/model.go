package user

// User maps to the users table. The password is stored as-is; hashing is out
// of scope for this system and the column is never serialized.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"`
}

// Input is the create/update payload. Updates are full replaces.
type Input struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
