package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	authdto "poolwatch/internal/modules/auth/dto"
)

func newAuthCmd(opts *rootOptions) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Sign in and manage the stored session"}

	var username, password string
	login := &cobra.Command{
		Use:   "login --username <name>",
		Short: "Sign in and store the tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(username) == "" {
				return fmt.Errorf("--username is required")
			}
			secret, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			session, ok := s.app.AuthCLI.Login(cmd.Context(), username, secret)
			if !ok {
				return errors.New(session.Error)
			}
			return printSession(s.out, session)
		},
	}
	login.Flags().StringVar(&username, "username", "", "account username")
	login.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")

	var regEmail, regUsername, regPassword string
	register := &cobra.Command{
		Use:   "register --email <email> --username <name>",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(regEmail) == "" || strings.TrimSpace(regUsername) == "" {
				return fmt.Errorf("--email and --username are required")
			}
			secret, err := passwordOrPrompt(cmd, regPassword)
			if err != nil {
				return err
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			session, ok := s.app.AuthCLI.Register(cmd.Context(), regEmail, regUsername, secret)
			if !ok {
				return errors.New(session.Error)
			}
			return printSession(s.out, session)
		},
	}
	register.Flags().StringVar(&regEmail, "email", "", "account email")
	register.Flags().StringVar(&regUsername, "username", "", "account username")
	register.Flags().StringVar(&regPassword, "password", "", "account password (prompted when omitted)")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			s.app.AuthCLI.Logout(cmd.Context())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Restore the stored session and show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			return printSession(s.out, s.app.AuthCLI.Initialize(cmd.Context()))
		},
	}

	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new pair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			session, ok := s.app.AuthCLI.Refresh(cmd.Context())
			if !ok {
				return errors.New(session.Error)
			}
			return printSession(s.out, session)
		},
	}

	token := &cobra.Command{
		Use:   "token",
		Short: "Show the stored access token's subject and expiry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			info, err := s.app.AuthCLI.TokenInfo(cmd.Context())
			if err != nil {
				return err
			}
			return s.out.print(info, func(tw *tabwriter.Writer) {
				row(tw, "SUBJECT", "TYPE", "EXPIRES", "EXPIRED", "REMAINING")
				row(tw, info.Subject, info.Type, info.ExpiresAt, info.Expired, info.Remaining.Round(time.Second).String())
			})
		},
	}

	auth.AddCommand(login, register, logout, status, refresh, token)
	return auth
}

func printSession(p printer, session authdto.SessionOutput) error {
	return p.print(session, func(tw *tabwriter.Writer) {
		if session.User == nil {
			row(tw, "STATUS")
			row(tw, session.Phase)
			return
		}
		u := session.User
		row(tw, "STATUS", "ID", "USERNAME", "EMAIL", "ADMIN")
		row(tw, session.Phase, u.ID, u.Username, u.Email, u.IsSuperuser)
	})
}

// passwordOrPrompt reads one line from stdin when no password flag was given.
func passwordOrPrompt(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("password is required")
	}
	return line, nil
}
