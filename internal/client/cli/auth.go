package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/givehub/givehub/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and runs the login transaction. The failure
// reason reported by the session controller is shown to the user verbatim;
// state handling (persistence, loading flag) is entirely the controller's.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		fmt.Printf("Login failed: %s\n", err)
		return nil
	}

	fmt.Printf("Welcome back, %s!\n", user.Name)
	return nil
}

// Register walks the signup flow. Entering a charity name registers a
// charity account; leaving it empty registers a donor. A successful
// registration signs the user in immediately.
func (a *App) Register(ctx context.Context) error {
	req := models.RegisterRequest{}

	charityName, err := getSimpleText(a.reader, "Charity name (leave empty to register as a donor)", os.Stdout)
	if err != nil {
		return err
	}

	if charityName != "" {
		req.CharityName = charityName
	} else {
		if req.FirstName, err = getSimpleText(a.reader, "First name", os.Stdout); err != nil {
			return err
		}
		if req.LastName, err = getSimpleText(a.reader, "Last name", os.Stdout); err != nil {
			return err
		}
	}

	if req.Email, err = getSimpleText(a.reader, "Enter email", os.Stdout); err != nil {
		return err
	}
	if req.Password, err = getPassword(os.Stdout); err != nil {
		return err
	}

	user, err := a.session.Register(ctx, req)
	if err != nil {
		fmt.Printf("Registration failed: %s\n", err)
		return nil
	}

	fmt.Printf("Account created. You are signed in as %s (%s).\n", user.Name, user.Role)
	return nil
}

// Logout destroys the session. It cannot fail from the user's perspective.
func (a *App) Logout(ctx context.Context) {
	a.session.Logout(ctx)
	fmt.Println("Logged out.")
}

// WhoAmI prints the current identity, if any.
func (a *App) WhoAmI() {
	snap := a.session.Snapshot()
	if !snap.Authenticated {
		fmt.Println("Not signed in.")
		return
	}
	fmt.Printf("%s <%s> (%s)\n", snap.User.Name, snap.User.Email, snap.User.Role)
	if snap.Loading {
		fmt.Println("(identity is being re-verified in the background)")
	}
}

// UpdateProfile edits the display name locally and re-persists the user
// under the existing token.
func (a *App) UpdateProfile(ctx context.Context) error {
	snap := a.session.Snapshot()
	if !snap.Authenticated {
		fmt.Println("Sign in first.")
		return nil
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("New display name (current: %s)", snap.User.Name), os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}

	updated := *snap.User
	updated.Name = name
	if err := a.session.UpdateUser(ctx, &updated); err != nil {
		fmt.Printf("Could not save profile: %s\n", err)
		return nil
	}
	fmt.Println("Profile updated.")
	return nil
}
