package cli

import (
	"context"
	"fmt"
	"time"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates through the session
// store, so the outcome lands both in the printed output and in the store's
// reactive state.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", a.session.State().Error)
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Name)
	return nil
}

// Signup prompts for the account fields and registers through the session
// store.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	user, err := a.session.Signup(ctx, email, password, name)
	if err != nil {
		fmt.Fprintf(a.out, "Signup failed: %s\n", a.session.State().Error)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	return nil
}

// Logout signs out. Local state is cleared even when the server is
// unreachable.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// WhoAmI shows the freshest account record available: the backend's answer
// when reachable, the persisted record otherwise.
func (a *App) WhoAmI(ctx context.Context) error {
	user := a.auth.CurrentUser(ctx)
	source := "server"
	if user == nil {
		user = a.auth.StoredUser(ctx)
		source = "local"
	}
	if user == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}

	fmt.Fprintf(a.out, "%s <%s> (id %s, %s)\n", user.Name, user.Email, user.ID, source)
	return nil
}

// Status prints the session state machine's current shape.
func (a *App) Status(ctx context.Context) error {
	state := a.session.State()

	switch {
	case !state.IsInitialized:
		fmt.Fprintln(a.out, "Session: uninitialized")
	case state.User != nil:
		fmt.Fprintf(a.out, "Session: authenticated as %s\n", state.User.Email)
	default:
		fmt.Fprintln(a.out, "Session: anonymous")
	}

	if state.Error != "" {
		fmt.Fprintf(a.out, "Last error: %s\n", state.Error)
	}

	if exp, ok := a.auth.TokenExpiresAt(ctx); ok {
		fmt.Fprintf(a.out, "Token expires: %s\n", exp.Format(time.RFC3339))
	}

	s := a.settings.State()
	fmt.Fprintf(a.out, "API: %s  theme: %s  language: %s\n", s.APIURL, s.Theme, s.Language)
	return nil
}
