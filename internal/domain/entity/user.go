package entity

// User is an account registered through the identity provider.
type User struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Flights  []int64 `json:"flights"`
}

// Identity is the verified {id, username} pair returned by the
// identity exchange. The core treats it as already authenticated.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
