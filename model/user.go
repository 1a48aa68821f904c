package model

// User is a registered account.
// Password is kept as plain text; it is a placeholder and must not be used
// for anything real.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"` // Never expose password in JSON
}

// UserRecord is the persisted form of a User. Unlike User it carries the password.
type UserRecord struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToRecord serialises the user for storage.
func (u User) ToRecord() UserRecord {
	return UserRecord{
		Username: u.Username,
		Password: u.Password,
	}
}

// ToUser rebuilds a User from its record.
func (r UserRecord) ToUser() User {
	return User{
		Username: r.Username,
		Password: r.Password,
	}
}
