package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vsxtools/vsce/internal/manifest"
	"github.com/vsxtools/vsce/internal/publish"
	"github.com/vsxtools/vsce/internal/store"
)

var verifyPATFlag string

func init() {
	verifyPATCmd.Flags().StringVarP(&verifyPATFlag, "pat", "p", "", "Personal Access Token (defaults to the stored one)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(lsPublishersCmd)
	rootCmd.AddCommand(verifyPATCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login <publisher>",
	Short: "Add a publisher to the known publishers list",
	Long: `Store a Personal Access Token for a publisher in the OS keychain.

The token is checked against the Marketplace before it is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	publisher := args[0]
	s := newStore()
	prompter := publish.NewLinePrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

	if _, err := s.Get(publisher); err == nil {
		answer, err := prompter.Prompt(fmt.Sprintf("Publisher '%s' is already known. Do you want to overwrite its PAT? [y/N] ", publisher))
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			return &publish.AbortedError{}
		}
	} else {
		var notFound *store.PublisherNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	pat, err := prompter.Prompt(fmt.Sprintf("Personal Access Token for publisher '%s': ", publisher))
	if err != nil {
		return err
	}
	if pat == "" {
		return errors.New("a Personal Access Token is required")
	}

	if err := newService(cmd).VerifyPAT(cmd.Context(), publisher, pat); err != nil {
		return err
	}
	return s.Add(publisher, pat)
}

var logoutCmd = &cobra.Command{
	Use:   "logout <publisher>",
	Short: "Remove a publisher from the known publishers list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newStore().Remove(args[0]); err != nil {
			return err
		}
		newLogger(cmd).Done("Removed publisher '%s'.", args[0])
		return nil
	},
}

var lsPublishersCmd = &cobra.Command{
	Use:   "ls-publishers",
	Short: "List all known publishers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := newStore().List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var verifyPATCmd = &cobra.Command{
	Use:   "verify-pat [publisher]",
	Short: "Verify if the Personal Access Token has publish rights for the publisher",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var publisher string
		if len(args) == 1 {
			publisher = args[0]
		} else {
			cwd, err := workingDir()
			if err != nil {
				return err
			}
			m, err := manifest.Read(cwd)
			if err != nil {
				return err
			}
			publisher = m.Publisher
		}

		pat := explicitPAT(verifyPATFlag)
		if pat == "" {
			var err error
			if pat, err = newStore().Get(publisher); err != nil {
				return err
			}
		}
		return newService(cmd).VerifyPAT(cmd.Context(), publisher, pat)
	},
}
