package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/profilehub/profilehub/internal/client/api"
)

func printUser(u *api.User) {
	fmt.Printf("ID:           %d\n", u.ID)
	fmt.Printf("Username:     %s\n", u.Username)
	fmt.Printf("Display name: %s\n", u.DisplayName)
	fmt.Printf("Email:        %s\n", u.Email)
	fmt.Printf("Created:      %s\n", u.CreatedAt.Format("2006-01-02 15:04:05"))
}

// Profile fetches and prints the authenticated user's record.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.api.Profile(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printUser(user)
	return nil
}

// UpdateProfile prompts for new values, skipping fields left empty, and
// sends a partial update. The password cannot be changed here.
func (a *App) UpdateProfile(ctx context.Context) error {
	userName, err := getOptionalText(a.reader, "New username", os.Stdout)
	if err != nil {
		return err
	}
	displayName, err := getOptionalText(a.reader, "New display name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getOptionalText(a.reader, "New email", os.Stdout)
	if err != nil {
		return err
	}

	if userName == nil && displayName == nil && email == nil {
		fmt.Println("Nothing to update")
		return nil
	}

	user, err := a.api.UpdateProfile(ctx, api.UpdateProfileParams{
		Username:    userName,
		DisplayName: displayName,
		Email:       email,
	})
	if err != nil {
		log.Printf("Update unsuccessfull: %s", err.Error())
		return err
	}

	if userName != nil {
		a.userName = user.Username
	}
	fmt.Println("Success!")
	printUser(user)
	return nil
}

// DeleteProfile asks for confirmation and permanently deletes the account.
func (a *App) DeleteProfile(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete your account permanently? (yes/no)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Println("Cancelled")
		return nil
	}

	deleted, err := a.api.DeleteProfile(ctx)
	if err != nil {
		log.Printf("Delete unsuccessfull: %s", err.Error())
		return err
	}

	a.userName = ""
	if deleted {
		fmt.Println("Account deleted")
	} else {
		fmt.Println("Account was already gone")
	}
	return nil
}
