package auth

// Principal is the verified identity carried by an access token.
type Principal struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
}
