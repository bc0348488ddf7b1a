package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bd2switch/internal/i18n"
	"bd2switch/internal/model"
	"bd2switch/internal/services/switcher"
)

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the current live session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := outputLang(ctx)

			session, err := app.Switcher.Current(ctx, lang)
			if err != nil {
				return err
			}

			label := i18n.T(lang, "current_login")
			switch session.Status {
			case switcher.StatusNotLoggedIn:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, i18n.T(lang, "not_logged_in"))
			case switcher.StatusInvalid:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, i18n.T(lang, "invalid_data"))
			default:
				who := session.AccountName
				if who == "" {
					who = session.MaskedID
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, displayLine(who, session.Info, lang))
			}
			return nil
		},
	}
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Load a saved account into the game registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := outputLang(ctx)
			name := args[0]

			if !confirm(cmd, i18n.T(lang, "confirm_load", name)) {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "aborted"))
				return nil
			}
			if err := app.Switcher.Load(ctx, name); err != nil {
				if errors.Is(err, model.ErrRegistryKeyNotFound) {
					return errors.New(i18n.T(lang, "registry_not_found"))
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "account_loaded", name))
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current live session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := outputLang(ctx)

			if !confirm(cmd, i18n.T(lang, "confirm_logout")) {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "aborted"))
				return nil
			}
			if err := app.Switcher.Logout(ctx); err != nil {
				if errors.Is(err, model.ErrRegistryKeyNotFound) {
					return errors.New(i18n.T(lang, "registry_not_found"))
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "logged_out"))
			return nil
		},
	}
}

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Update a saved account with the refreshed live token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := outputLang(ctx)

			match, err := app.Switcher.MatchCurrent(ctx)
			if errors.Is(err, model.ErrNoActiveSession) || errors.Is(err, model.ErrRegistryKeyNotFound) {
				return errors.New(i18n.T(lang, "no_token"))
			}
			if errors.Is(err, model.ErrInvalidToken) {
				return errors.New(i18n.T(lang, "invalid_token"))
			}
			if err != nil {
				return err
			}

			if !match.Matched {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "no_match", match.MaskedPrefix))
				return nil
			}
			if !confirm(cmd, i18n.T(lang, "confirm_refresh", match.AccountName)) {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "aborted"))
				return nil
			}
			if err := app.Switcher.Overwrite(ctx, match.AccountName); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "token_updated", match.AccountName))
			return nil
		},
	}
}

func newLangCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang <en|zh>",
		Short: "Set the persisted output language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := app.Switcher.SetLanguage(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(i18n.Parse(args[0]), "language_set", args[0]))
			return nil
		},
	}
}
