package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bd2switch/internal/i18n"
	"bd2switch/internal/model"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := outputLang(ctx)

			views, err := app.Switcher.List(ctx, lang)
			if err != nil {
				return err
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "no_accounts"))
				return nil
			}
			for _, v := range views {
				fmt.Fprintln(cmd.OutOrStdout(), displayLine(v.Name, v.Info, lang))
			}
			return nil
		},
	}
}

func newSaveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current session as a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := outputLang(ctx)
			name := args[0]

			err := app.Switcher.SaveCurrent(ctx, name)
			if errors.Is(err, model.ErrNameConflict) {
				if !force && !confirm(cmd, i18n.T(lang, "account_exists", name)) {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "aborted"))
					return nil
				}
				if err = app.Switcher.Overwrite(ctx, name); err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "account_updated", name))
					return nil
				}
			}
			if errors.Is(err, model.ErrRegistryKeyNotFound) {
				return errors.New(i18n.T(lang, "registry_not_found"))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "account_saved", name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite without confirmation if the name exists")

	return cmd
}

func newOverwriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overwrite <name>",
		Short: "Overwrite a saved account with the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := outputLang(ctx)
			name := args[0]

			if !confirm(cmd, i18n.T(lang, "confirm_overwrite", name)) {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "aborted"))
				return nil
			}
			if err := app.Switcher.Overwrite(ctx, name); err != nil {
				if errors.Is(err, model.ErrRegistryKeyNotFound) {
					return errors.New(i18n.T(lang, "registry_not_found"))
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "account_updated", name))
			return nil
		},
	}
}

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a saved account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := outputLang(ctx)

			err := app.Switcher.Rename(ctx, args[0], args[1])
			if errors.Is(err, model.ErrNameConflict) {
				return errors.New(i18n.T(lang, "name_exists", args[1]))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "renamed", args[1]))
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := outputLang(ctx)
			name := args[0]

			if !confirm(cmd, i18n.T(lang, "confirm_delete", name)) {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "aborted"))
				return nil
			}
			if err := app.Switcher.Delete(ctx, name); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "account_deleted", name))
			return nil
		},
	}
}
