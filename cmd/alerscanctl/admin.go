package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"alerscan/internal/auth"
	"alerscan/internal/db"
	"alerscan/internal/store"
)

const usernameFlag = "username"

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func newProvisionAdminCommand() *cobra.Command {
	var passwordStdin bool
	adminFlags := map[string]cobraflags.Flag{
		usernameFlag: &cobraflags.StringFlag{
			Name:  usernameFlag,
			Value: "admin",
			Usage: "Username of the administrator account",
		},
	}

	cmd := &cobra.Command{
		Use:   "provision-admin",
		Short: "Create the administrator account if it does not exist",
		Long: `Create the administrator account if it does not exist.

The password is prompted for on the terminal, or read from the first line of
standard input with --password-stdin. Existing accounts are never modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username := strings.TrimSpace(adminFlags[usernameFlag].GetString())
			if username == "" {
				return errors.New("--username must not be empty")
			}

			var (
				password string
				err      error
			)
			if passwordStdin {
				password, err = passwordFromReader(cmd.InOrStdin())
			} else {
				password, err = promptPassword(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}

			database, err := connect(cmd)
			if err != nil {
				return err
			}
			defer closeDatabase(database)

			if err := db.Migrate(cmd.Context(), database); err != nil {
				return err
			}

			created, err := auth.NewService(store.New(database)).ProvisionAdmin(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created account %q\n", username)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "account %q already exists, left unchanged\n", username)
			}
			return nil
		},
	}

	cobraflags.RegisterMap(cmd, adminFlags)
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from standard input")
	return cmd
}

func passwordFromReader(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("empty password on standard input")
	}
	return password, nil
}

func promptPassword(w io.Writer) (string, error) {
	fmt.Fprint(w, "Password: ")
	first, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	fmt.Fprint(w, "Confirm password: ")
	second, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", auth.ErrPasswordMismatch
	}
	if len(first) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(first), nil
}
