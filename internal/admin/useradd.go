package admin

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/flagx"
	"github.com/dmitrijs2005/bookstore/internal/server/forms"
	"github.com/dmitrijs2005/bookstore/internal/server/services"
)

var userAddFlags = []string{"-username", "-first", "-last", "-email"}

// userAdd creates an account with the same rules as the registration page.
// Missing fields are prompted for; the password is always read without echo.
func (a *App) userAdd(ctx context.Context, args []string) error {
	var userName, first, last, email string

	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.StringVar(&userName, "username", "", "username (5-20 characters)")
	fs.StringVar(&first, "first", "", "first name")
	fs.StringVar(&last, "last", "", "last name")
	fs.StringVar(&email, "email", "", "email address")
	if err := fs.Parse(flagx.FilterArgs(args, userAddFlags)); err != nil {
		return err
	}

	err := a.prompt.fill([]field{
		{&userName, "Username"},
		{&first, "First name"},
		{&last, "Last name"},
		{&email, "Email"},
	})
	if err != nil {
		return err
	}

	password, err := a.prompt.secret("Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form, err := forms.ParseRegister(url.Values{
		"username": {userName},
		"first":    {first},
		"last":     {last},
		"email":    {email},
		"password": {string(password)},
	})
	if err != nil {
		return err
	}

	if err := a.migrate(ctx); err != nil {
		return err
	}

	user, err := a.userService().Register(ctx, services.RegisterInput{
		UserName:  form.UserName,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("user %q already exists", form.UserName)
		}
		return err
	}

	fmt.Fprintf(a.out, "User %s created.\n", user.UserName)
	return nil
}
