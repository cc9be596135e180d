package domain

import "strings"

// User is the authenticated traveller profile as returned by the
// reservation backend. Password material is intentionally absent: the
// API layer discards it before a User ever reaches this type.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	FullName   string `json:"fullName"`
	DOB        string `json:"dob"`
	PassportID string `json:"passportId"`
	Role       string `json:"role,omitempty"`
}

// RegistrationProfile carries the fields collected by the registration
// form. The password is held only for the duration of the register call.
type RegistrationProfile struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	DOB        string `json:"dob"`
	PassportID string `json:"passportId"`
	Password   string `json:"password"`
}

// MissingFields returns the names of required registration fields that
// are empty or whitespace.
func (p RegistrationProfile) MissingFields() []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("fullName", p.FullName)
	check("email", p.Email)
	check("phone", p.Phone)
	check("dob", p.DOB)
	check("passportId", p.PassportID)
	check("password", p.Password)
	return missing
}
