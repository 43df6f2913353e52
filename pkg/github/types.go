package github

// Repository describes one remote repository to be mirrored. Name is unique
// within the account and doubles as the local directory name; SSHURL is the
// transport URL handed to git.
type Repository struct {
	Name   string `json:"name"`
	SSHURL string `json:"ssh_url"`
}

// Account selects whose repositories to list: either an explicit account name,
// or the account that owns the ambient credentials.
type Account struct {
	Name          string
	Authenticated bool
}

// String returns a human-readable identifier for error and status messages.
func (a Account) String() string {
	if a.Authenticated {
		return "the authenticated user"
	}
	return a.Name
}
