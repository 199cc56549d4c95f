package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/profilehub/profilehub/internal/client/api"
	"github.com/profilehub/profilehub/internal/common"
)

// getSimpleText, getOptionalText and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getOptionalText = GetOptionalText
var getPassword = GetPassword

// Register prompts for account details and creates a new account. On
// success the client is immediately logged in with the issued token pair.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	displayName, err := getOptionalText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	params := api.RegisterParams{
		Username: userName,
		Email:    email,
		Password: string(password),
	}
	if displayName != nil {
		params.DisplayName = *displayName
	}

	resp, err := a.api.Register(ctx, params)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			log.Printf("An account with this email already exists")
			return err
		}
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return err
	}

	a.userName = resp.User.Username
	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and authenticates against the server.
// A wrong password and an unknown email produce the same message.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			log.Printf("Server unavailable")
		} else {
			log.Printf("Login unsuccessfull: invalid credentials")
		}
		return err
	}

	a.userName = resp.User.Username
	log.Printf("Login successfull")
	return nil
}

// Refresh exchanges the stored refresh token for a new access token. If
// the session has expired the user is told to log in again.
func (a *App) Refresh(ctx context.Context) error {
	_, err := a.api.Refresh(ctx)
	if err != nil {
		if errors.Is(err, common.ErrRefreshTokenExpired) {
			log.Printf("Session expired, please login again")
			a.userName = ""
		} else {
			log.Printf("Refresh unsuccessfull: %s", err.Error())
		}
		return err
	}

	log.Printf("Access token refreshed")
	return nil
}

// Logout revokes the current refresh token on the server and forgets the
// local session.
func (a *App) Logout(ctx context.Context) error {
	revoked, err := a.api.Logout(ctx)
	if err != nil {
		log.Printf("Logout unsuccessfull: %s", err.Error())
		return err
	}

	a.userName = ""
	if revoked {
		log.Printf("Logged out")
	} else {
		log.Printf("Session was already revoked")
	}
	return nil
}
