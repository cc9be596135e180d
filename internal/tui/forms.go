package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/skyreserve/skyreserve/internal/api"
	"github.com/skyreserve/skyreserve/internal/domain"
)

// Credentials holds the login form result.
type Credentials struct {
	Email    string
	Password string
}

// LoginForm collects an email and password interactively. Either field
// may be pre-filled (e.g. from a flag) to skip its prompt.
func LoginForm(creds *Credentials) error {
	var groups []*huh.Group
	if creds.Email == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Validate(requireField("email")).
				Value(&creds.Email),
		))
	}
	if creds.Password == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(requireField("password")).
				Value(&creds.Password),
		))
	}
	if len(groups) == 0 {
		return nil
	}
	if err := huh.NewForm(groups...).Run(); err != nil {
		return fmt.Errorf("login prompt: %w", err)
	}
	return nil
}

// RegistrationForm collects a complete traveller profile.
func RegistrationForm(profile *domain.RegistrationProfile) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Validate(requireField("full name")).
				Value(&profile.FullName),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Validate(requireField("email")).
				Value(&profile.Email),
			huh.NewInput().
				Title("Phone").
				Validate(requireField("phone")).
				Value(&profile.Phone),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Date of birth").
				Placeholder("1990-01-31").
				Validate(validateDOB).
				Value(&profile.DOB),
			huh.NewInput().
				Title("Passport number").
				Validate(requireField("passport number")).
				Value(&profile.PassportID),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(requireField("password")).
				Value(&profile.Password),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("registration prompt: %w", err)
	}
	return nil
}

// Passenger holds the booking form result.
type Passenger struct {
	Name  string
	Phone string
}

// PassengerForm collects passenger details, pre-filled from the
// session profile so a traveller booking for themselves just confirms.
func PassengerForm(p *Passenger) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Passenger name").
			Validate(requireField("passenger name")).
			Value(&p.Name),
		huh.NewInput().
			Title("Contact phone").
			Validate(requireField("contact phone")).
			Value(&p.Phone),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("passenger prompt: %w", err)
	}
	return nil
}

// PaymentForm collects card details for the simulated gateway.
func PaymentForm(details *api.PaymentDetails) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Card number").
			Placeholder("4111 1111 1111 1111").
			Validate(requireField("card number")).
			Value(&details.CardNumber),
		huh.NewInput().
			Title("Expiry").
			Placeholder("MM/YY").
			Validate(requireField("expiry")).
			Value(&details.Expiry),
		huh.NewInput().
			Title("CVV").
			EchoMode(huh.EchoModePassword).
			Validate(requireField("CVV")).
			Value(&details.CVV),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("payment prompt: %w", err)
	}
	return nil
}

// Confirm displays a yes/no confirmation prompt
func Confirm(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return confirmed, nil
}

func requireField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validateDOB(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("date of birth is required")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt returns true if prompts should be shown based on environment
// Prompts are disabled in CI environments or when stdin is not a terminal
func ShouldPrompt() bool {
	ciEnvVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"BUILDKITE",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return false
		}
	}

	return IsInteractive()
}
