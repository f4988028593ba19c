package model

import "sync"

const (
	flagTrue  = "T"
	flagFalse = "F"
)

// FlagValue decodes the server's string flags: only "T" is true.
func FlagValue(s string) bool {
	return s == flagTrue
}

func FlagString(b bool) string {
	if b {
		return flagTrue
	}

	return flagFalse
}

type User struct {
	ID           string  `json:"id" yaml:"id"`
	Username     string  `json:"username" yaml:"username"`
	Description  string  `json:"description" yaml:"description"`
	Email        string  `json:"email" yaml:"email"`
	Availability bool    `json:"availability" yaml:"availability"`
	ShareGPS     bool    `json:"share_gps" yaml:"share_gps"`
	YearOfEntry  string  `json:"year_of_entry" yaml:"year_of_entry"`
	Major        string  `json:"major" yaml:"major"`
	Gender       string  `json:"gender" yaml:"gender"`
	Age          string  `json:"age" yaml:"age"`
	College      string  `json:"college" yaml:"college"`
	Latitude     float64 `json:"latitude" yaml:"latitude"`
	Longitude    float64 `json:"longitude" yaml:"longitude"`
}

// ProfileDTO is the profile record as the server sends it.
type ProfileDTO struct {
	ID           FlexString `json:"id,omitempty"`
	Username     string     `json:"username"`
	Description  string     `json:"description"`
	Email        string     `json:"email"`
	Availability string     `json:"availability"`
	SharedGPS    string     `json:"shared_gps"`
	Year         FlexString `json:"year"`
	Major        string     `json:"major"`
	Gender       string     `json:"gender"`
	Age          FlexString `json:"age"`
	College      string     `json:"college"`
}

// ApplyProfile copies profile fields onto u. ID and position are left alone.
func (u *User) ApplyProfile(p *ProfileDTO) {
	if u == nil || p == nil {
		return
	}

	u.Username = p.Username
	u.Description = p.Description
	u.Email = p.Email
	u.Availability = FlagValue(p.Availability)
	u.ShareGPS = FlagValue(p.SharedGPS)
	u.YearOfEntry = p.Year.String()
	u.Major = p.Major
	u.Gender = p.Gender
	u.Age = p.Age.String()
	u.College = p.College
}

// UserFromProfile builds a user for id; a non-empty id in the record wins.
func UserFromProfile(id string, p *ProfileDTO) *User {
	u := &User{ID: id}
	if p == nil {
		return u
	}

	if p.ID != "" {
		u.ID = p.ID.String()
	}

	u.ApplyProfile(p)

	return u
}

// Params renders the user as /updateProfile query parameters.
func (u *User) Params() map[string]string {
	return map[string]string{
		"id":           u.ID,
		"username":     u.Username,
		"description":  u.Description,
		"email":        u.Email,
		"availability": FlagString(u.Availability),
		"shared_gps":   FlagString(u.ShareGPS),
		"year":         u.YearOfEntry,
		"major":        u.Major,
		"gender":       u.Gender,
		"age":          u.Age,
		"college":      u.College,
	}
}

// Session holds the single logged-in user.
type Session struct {
	mx   sync.RWMutex
	user User
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) ID() string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return s.user.ID
}

func (s *Session) SetID(id string) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.user.ID = id
}

// User returns a copy of the session user.
func (s *Session) User() User {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return s.user
}

func (s *Session) Update(f func(u *User)) {
	s.mx.Lock()
	defer s.mx.Unlock()

	f(&s.user)
}

func (s *Session) Clean() {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.user = User{}
}
