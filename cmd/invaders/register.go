package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/account"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
)

var (
	flagRegUsername  string
	flagRegPassword  string
	flagRegFirstName string
	flagRegLastName  string
	flagRegEmail     string
	flagRegBirthDate string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a player account",
	Long: `Create a player account without starting a match.

When every field is given on the command line the account is created
directly. Otherwise the sign-up form opens with the given fields filled in.

Password rules: at least 8 characters, letters and digits only, with at
least one of each.

Examples:
  invaders register
  invaders register --username alice
  invaders register --username alice --password s3cretpass --first-name Alice \
    --last-name Smith --email alice@example.com --birth-date 1990-04-12`,
	Run: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&flagRegUsername, "username", "", "Login name")
	registerCmd.Flags().StringVar(&flagRegPassword, "password", "", "Password (asked in the form when empty)")
	registerCmd.Flags().StringVar(&flagRegFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&flagRegLastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&flagRegEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&flagRegBirthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
}

func runRegister(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("invaders", io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	r := account.Registration{
		Username:        flagRegUsername,
		Password:        flagRegPassword,
		ConfirmPassword: flagRegPassword,
		FirstName:       flagRegFirstName,
		LastName:        flagRegLastName,
		Email:           flagRegEmail,
		BirthDate:       flagRegBirthDate,
	}

	store, accounts, err := openAccounts(logger)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	if complete(r) {
		u, err := accounts.Register(r)
		if verr, ok := account.AsValidation(err); ok {
			fmt.Fprintln(os.Stderr, "Registration failed:")
			for _, f := range verr.Fields {
				fmt.Fprintf(os.Stderr, "  %-16s %s\n", f.Field, f.Message)
			}
			store.Close()
			os.Exit(1)
		}
		if err != nil {
			fail("%v", err)
		}
		printRegistered(u.Username)
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fail("missing fields and no terminal for the sign-up form (pass every flag)")
	}
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w, h = 80, 24
	}
	user, err := tui.RunRegister(accounts, r, w, h)
	if errors.Is(err, tui.ErrRegisterCancelled) {
		fmt.Println("Registration cancelled.")
		return
	}
	if err != nil {
		fail("%v", err)
	}
	printRegistered(user)
}

// complete reports whether every field was given as a flag.
func complete(r account.Registration) bool {
	for _, v := range []string{r.Username, r.Password, r.FirstName, r.LastName, r.Email, r.BirthDate} {
		if v == "" {
			return false
		}
	}
	return true
}

func printRegistered(user string) {
	fmt.Printf("Account %q created. Run 'invaders play --user %s' to start.\n", user, user)
}
