// Command usermgmt creates, lists, updates and deletes inventory users.
//
//	usermgmt create
//	usermgmt list
//	usermgmt update <id>
//	usermgmt delete <id>
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"asset-inventory/internal/config"
	"asset-inventory/internal/database"
	"asset-inventory/internal/usermgmt"
)

const usage = `Usage: usermgmt <command> [id]

Commands:
  create        create a new user
  list          list all users
  update <id>   update a user
  delete <id>   delete a user (and its sessions)
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return nil
	}

	cfg, err := config.Load(os.Getenv("AIT_CONFIG"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	db, err := database.Init(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	m := usermgmt.NewManager(db)
	reader := bufio.NewReader(in)

	switch args[0] {
	case "create":
		return create(ctx, m, reader, out)
	case "list":
		users, err := m.List(ctx)
		if err != nil {
			return err
		}
		usermgmt.PrintUsers(out, users)
		return nil
	case "update", "delete":
		if len(args) < 2 {
			return fmt.Errorf("%s requires a user id", args[0])
		}
		id, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[1])
		}
		if args[0] == "update" {
			return update(ctx, m, uint(id), reader, out)
		}
		return remove(ctx, m, uint(id), reader, out)
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func create(ctx context.Context, m *usermgmt.Manager, r *bufio.Reader, out io.Writer) error {
	var in usermgmt.UserInput
	var err error
	if in.Username, err = usermgmt.Prompt(r, "Username: ", out); err != nil {
		return err
	}
	if in.Email, err = usermgmt.Prompt(r, "Email (optional): ", out); err != nil {
		return err
	}
	if in.Name, err = usermgmt.Prompt(r, "Name (optional): ", out); err != nil {
		return err
	}
	if in.Password, err = readNewPassword(out); err != nil {
		return err
	}

	user, err := m.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "User %q created with ID %d\n", user.Username, user.ID)
	return nil
}

func update(ctx context.Context, m *usermgmt.Manager, id uint, r *bufio.Reader, out io.Writer) error {
	user, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Updating %s (leave blank to keep current value)\n", user.Username)

	var in usermgmt.UserInput
	if in.Username, err = usermgmt.Prompt(r, "New username: ", out); err != nil {
		return err
	}
	if in.Email, err = usermgmt.Prompt(r, "New email: ", out); err != nil {
		return err
	}
	if in.Name, err = usermgmt.Prompt(r, "New name: ", out); err != nil {
		return err
	}
	change, err := usermgmt.Confirm(r, "Change password?", out)
	if err != nil {
		return err
	}
	if change {
		if in.Password, err = readNewPassword(out); err != nil {
			return err
		}
	}

	changed, err := m.Update(ctx, id, in)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(out, "Nothing to update")
		return nil
	}
	fmt.Fprintln(out, "User updated")
	return nil
}

func remove(ctx context.Context, m *usermgmt.Manager, id uint, r *bufio.Reader, out io.Writer) error {
	user, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	ok, err := usermgmt.Confirm(r, fmt.Sprintf("Delete user %s?", user.Username), out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Cancelled")
		return nil
	}
	if err := m.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(out, "User deleted")
	return nil
}

func readNewPassword(out io.Writer) (string, error) {
	pw, err := usermgmt.PromptPassword("Password: ", out)
	if err != nil {
		return "", err
	}
	again, err := usermgmt.PromptPassword("Confirm password: ", out)
	if err != nil {
		return "", err
	}
	if pw != again {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}
