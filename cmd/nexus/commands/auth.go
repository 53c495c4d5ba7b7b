package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nexus/internal/domain"
	sessionsvc "nexus/internal/services/session"
)

// readPassword returns flagValue or, when empty, the first line of in.
func readPassword(flagValue string, in io.Reader) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password required (--password or stdin)")
	}
	return pw, nil
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(password, cmd.InOrStdin())
			if err != nil {
				return err
			}
			user, err := appCtx.Session.Login(ctxOf(cmd), email, pw)
			if err != nil {
				return err
			}
			out.line("Signed in as %s <%s>.", user.FullName, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return publicOnly(cmd, sessionsvc.RouteLogin)
}

func registerCmd() *cobra.Command {
	var req domain.RegisterRequest
	var password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(password, cmd.InOrStdin())
			if err != nil {
				return err
			}
			req.Password = pw
			user, err := appCtx.Session.Register(ctxOf(cmd), req)
			if err != nil {
				return err
			}
			out.line("Welcome, %s. Four default accounts were created.", user.FullName)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "phone number (optional)")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return publicOnly(cmd, sessionsvc.RouteRegister)
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx.Session.Logout()
			out.line("Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := appCtx.Session.State()
			view := struct {
				Status string              `json:"status"`
				User   *domain.UserProfile `json:"user,omitempty"`
			}{Status: st.Status.String(), User: st.User}

			return out.print(view, func(tw table.Writer) {
				tw.AppendHeader(table.Row{"Status", "ID", "Name", "Email"})
				if st.User == nil {
					tw.AppendRow(table.Row{view.Status, "", "", ""})
					return
				}
				tw.AppendRow(table.Row{view.Status, st.User.ID, st.User.FullName, st.User.Email})
			})
		},
	}
}

// describe renders err for the terminal.
func describe(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return strings.Join(verr.Messages, "; ")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, domain.ErrSessionExpired):
		return "session expired, sign in again"
	case domain.IsNetworkError(err):
		return fmt.Sprintf("cannot reach the backend at %s: %v", settingsURL(), err)
	}
	return err.Error()
}

func settingsURL() string {
	if settings == nil {
		return "the configured URL"
	}
	return settings.APIURL
}
