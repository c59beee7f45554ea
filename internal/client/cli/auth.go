package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/clouddrive/internal/client/library"
	"github.com/dmitrijs2005/clouddrive/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email and password and creates an account.
// A rejected registration is reported to the user and is not an error.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Register(ctx, name, email, string(password))
	if !res.Success {
		printlnFn(res.Message)
		return nil
	}
	return a.welcome(ctx)
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, email, string(password))
	if !res.Success {
		printlnFn(res.Message)
		return nil
	}
	return a.welcome(ctx)
}

func (a *App) welcome(ctx context.Context) error {
	u, _ := a.session.User()
	printlnFn(fmt.Sprintf("Welcome, %s!", u.Name))
	return a.List(ctx, "")
}

// Logout ends the session. Any open upload panel or share dialog goes with
// it.
func (a *App) Logout(ctx context.Context) error {
	if a.library.Uploader() != nil {
		a.library.ToggleUpload()
	}
	if d := a.library.Share(); d != nil {
		d.Close()
	}
	a.library.SetQuery("")

	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

// WhoAmI prints the signed-in user and when the session token lapses.
func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.session.User()
	if !ok {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>", u.Name, u.Email))
	if exp, ok := a.session.ExpiresAt(); ok {
		printlnFn("Session " + library.FormatExpiry(&exp))
	}
	return nil
}
