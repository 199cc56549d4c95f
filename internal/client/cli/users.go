package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
)

// Users lists all registered users.
func (a *App) Users(ctx context.Context) error {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users")
		return nil
	}

	for _, u := range users {
		fmt.Printf("%d\t%s\t%s\n", u.ID, u.Username, u.Email)
	}
	return nil
}

// User prompts for an id and shows a single user.
func (a *App) User(ctx context.Context) error {
	value, err := getSimpleText(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		fmt.Println("Invalid id:", value)
		return err
	}

	user, err := a.api.GetUser(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printUser(user)
	return nil
}
