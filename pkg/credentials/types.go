package credentials

// Credentials represents the stored dashboard session in credentials.toml.
type Credentials struct {
	Version int     `toml:"version"`
	Session Session `toml:"session"`
}

// Session is the bearer token issued by the dashboard at login.
type Session struct {
	Server   string `toml:"server,omitempty"`
	Username string `toml:"username,omitempty"`
	Token    string `toml:"token,omitempty"`
}

// Empty reports whether no token is stored.
func (s Session) Empty() bool {
	return s.Token == ""
}
