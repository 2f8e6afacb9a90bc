package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leish-app/leish-go/internal/settings"
)

// Theme shows or changes the UI theme.
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Theme: %s\n", a.settings.State().Theme)
		return nil
	}

	theme := settings.Theme(args[0])
	if !theme.Valid() {
		fmt.Fprintln(a.out, "Usage: theme [light|dark|auto]")
		return nil
	}

	a.settings.SetTheme(theme)
	fmt.Fprintf(a.out, "Theme set to %s\n", theme)
	return nil
}

// Language shows or changes the UI language.
func (a *App) Language(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Language: %s\n", a.settings.State().Language)
		return nil
	}

	a.settings.SetLanguage(args[0])
	fmt.Fprintf(a.out, "Language set to %s\n", args[0])
	return nil
}

// Pref reads or writes a key in the durable preference blob:
//
//	pref <key>           print the stored value
//	pref <key> <value>   store the value
func (a *App) Pref(ctx context.Context, args []string) error {
	switch len(args) {
	case 1:
		value := a.store.Preference(ctx, args[0])
		if value == nil {
			fmt.Fprintf(a.out, "%s is not set\n", args[0])
			return nil
		}
		fmt.Fprintf(a.out, "%s = %v\n", args[0], value)
		return nil
	case 2:
		if err := a.store.SetPreference(ctx, args[0], args[1]); err != nil {
			fmt.Fprintf(a.out, "Failed to save preference: %v\n", err)
			return err
		}
		fmt.Fprintf(a.out, "%s = %s\n", args[0], args[1])
		return nil
	default:
		fmt.Fprintln(a.out, "Usage: pref <key> [value]")
		return nil
	}
}

// Fetch performs a raw authenticated GET against the backend and pretty-
// prints the JSON response. Mostly a debugging aid.
func (a *App) Fetch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: get <endpoint>")
		return nil
	}

	var out any
	if err := a.api.Get(ctx, args[0], &out); err != nil {
		fmt.Fprintf(a.out, "Request failed: %v\n", err)
		return err
	}

	pretty, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(pretty))
	return nil
}
