package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fieldadmin/internal/client/client"
	"github.com/dmitrijs2005/fieldadmin/internal/client/guard"
	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/pterm/pterm"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, establishes a session and moves to the
// landing screen.
//
// Wrong credentials and an unreachable backend are reported differently;
// either way the error is returned to the caller.
func (a *App) Login(ctx context.Context) error {
	username, err := promptRequired(a.reader, "Usuario", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	id, err := a.authService.Login(ctx, username, string(password))
	if err != nil {
		switch {
		case errors.Is(err, client.ErrUnavailable):
			pterm.Error.Println("Server unavailable, try again later")
		case errors.Is(err, client.ErrUnauthorized):
			pterm.Error.Println("Invalid username or password")
		}
		a.log.Info(ctx, "login failed", "username", username, "error", err)
		return err
	}

	a.location = a.router.Navigate(guard.LandingPath).Path
	pterm.Success.Printfln("Welcome, %s (%s)", id.Username, strings.Join(id.Roles, ", "))
	return nil
}

// Logout clears the session and returns to the login screen. It succeeds
// even when nobody is logged in.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.location = guard.LoginPath
	if err != nil {
		pterm.Warning.Println("Logged out, but the stored session could not be cleared")
		return err
	}
	pterm.Info.Println("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	id, ok := a.store.Identity()
	if !ok {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn("User: ", id.Username)
	printlnFn("Roles:", strings.Join(id.Roles, ", "))
	return nil
}

// Refresh renews the token pair. A rejected refresh ends the session.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.authService.Refresh(ctx); err != nil {
		a.location = guard.LoginPath
		pterm.Warning.Println("Session expired, please log in again")
		return err
	}
	pterm.Success.Println("Session renewed")
	return nil
}

// Register creates a customer account. The password is asked twice.
func (a *App) Register(ctx context.Context) error {
	var reg models.CustomerRegistration
	var err error

	if reg.Username, err = promptRequired(a.reader, "Usuario", a.out); err != nil {
		return err
	}
	if reg.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if reg.Name, err = promptRequired(a.reader, "Nombre", a.out); err != nil {
		return err
	}
	if reg.Phone, err = getSimpleText(a.reader, "Teléfono", a.out); err != nil {
		return err
	}
	if reg.Address, err = getSimpleText(a.reader, "Dirección", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)
	confirm, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(confirm)

	reg.Password = string(password)
	if err := a.authService.Register(ctx, reg, string(confirm)); err != nil {
		return err
	}

	pterm.Success.Println("Account created, you can log in now")
	return nil
}

// ChangePassword asks for the current password and the new one twice.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(current)

	next, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(next)

	confirm, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(confirm)

	if string(next) != string(confirm) {
		return fmt.Errorf("%w: passwords do not match", client.ErrValidation)
	}

	if err := a.authService.ChangePassword(ctx, string(current), string(next)); err != nil {
		return err
	}
	pterm.Success.Println("Password changed")
	return nil
}
