package model

// User is a server-owned account record as listed by the backend.
type User struct {
	ID       string
	Username string
	Fullname string
}

// UserInput is the payload accepted by create and update. Password is
// write-only: it is never populated from a fetched record.
type UserInput struct {
	Fullname string
	Username string
	Password string
}
