package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the document QA server",
	Long: `Sign in with a username and password. The returned token is saved to the
settings file and sent with every request.

Examples:
  docqa login
  docqa login --username alice`,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the document QA server",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved token",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

// Flags for login and register.
var (
	authUsername string
	authEmail    string
)

func init() {
	loginCmd.Flags().StringVarP(&authUsername, "username", "u", "", "Username (prompted if omitted)")
	registerCmd.Flags().StringVarP(&authUsername, "username", "u", "", "Username (prompted if omitted)")
	registerCmd.Flags().StringVarP(&authEmail, "email", "e", "", "Email address (prompted if omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil {
		return errNoCredentialsService
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	username := authUsername
	if username == "" {
		username = prompt(cmd, reader, "Username: ")
	}
	cmd.Print("Password: ")
	password := readPassword(cmd, reader)
	cmd.Println()

	account, err := credentialsService.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Signed in as %s\n", account.Username)
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil {
		return errNoCredentialsService
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	username := authUsername
	if username == "" {
		username = prompt(cmd, reader, "Username: ")
	}
	email := authEmail
	if email == "" {
		email = prompt(cmd, reader, "Email: ")
	}
	cmd.Print("Password: ")
	password := readPassword(cmd, reader)
	cmd.Println()
	cmd.Print("Confirm password: ")
	confirm := readPassword(cmd, reader)
	cmd.Println()

	if password != confirm {
		return errors.New("passwords do not match")
	}

	account, err := credentialsService.Register(cmd.Context(), username, email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	cmd.Printf("Account created. Signed in as %s\n", account.Username)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil {
		return errNoCredentialsService
	}

	if err := credentialsService.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil {
		return errNoCredentialsService
	}

	username, ok := credentialsService.Current()
	if !ok {
		cmd.Println("Not signed in. Run 'docqa login'.")
		return nil
	}
	cmd.Println(username)
	return nil
}

// prompt prints label and reads one trimmed line.
func prompt(cmd *cobra.Command, reader *bufio.Reader, label string) string {
	cmd.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// readPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read otherwise.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) string {
	if cmd.InOrStdin() == os.Stdin {
		fd := int(os.Stdin.Fd()) //nolint:gosec // fd fits in int
		if term.IsTerminal(fd) {
			password, err := term.ReadPassword(fd)
			if err == nil {
				return string(password)
			}
		}
	}
	line, _ := reader.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
