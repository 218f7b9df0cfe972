package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen/internal/app/account"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your profile and account",
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		svc := account.NewService(a.provider, a.identity)
		p, err := svc.Profile(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("User:          %s\n", a.user())
		fmt.Printf("Name:          %s %s\n", p.FirstName, p.LastName)
		fmt.Printf("Email:         %s\n", p.Email)
		fmt.Printf("Date of birth: %s\n", p.DateOfBirth)
		fmt.Printf("Job title:     %s\n", p.JobTitle)
		fmt.Printf("Bio:           %s\n", p.Bio)
		return nil
	},
}

var (
	profileFirstName string
	profileLastName  string
	profileEmail     string
	profileDOB       string
	profileJobTitle  string
	profileBio       string
)

var accountSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		svc := account.NewService(a.provider, a.identity)
		p, err := svc.Profile(cmd.Context())
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("first-name") {
			p.FirstName = profileFirstName
		}
		if cmd.Flags().Changed("last-name") {
			p.LastName = profileLastName
		}
		if cmd.Flags().Changed("email") {
			p.Email = profileEmail
		}
		if cmd.Flags().Changed("dob") {
			p.DateOfBirth = profileDOB
		}
		if cmd.Flags().Changed("job-title") {
			p.JobTitle = profileJobTitle
		}
		if cmd.Flags().Changed("bio") {
			p.Bio = profileBio
		}

		if err := svc.SaveProfile(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Println("Profile saved.")
		return nil
	},
}

var accountDeleteYes bool

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Permanently delete your account and all data",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if !accountDeleteYes {
			fmt.Printf("This permanently deletes all data for %s. Type 'delete' to confirm: ", a.user())
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(line) != "delete" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		svc := account.NewService(a.provider, a.identity)
		if err := svc.DeleteAccount(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Account deleted.")
		return nil
	},
}

func init() {
	accountSetCmd.Flags().StringVar(&profileFirstName, "first-name", "", "first name")
	accountSetCmd.Flags().StringVar(&profileLastName, "last-name", "", "last name")
	accountSetCmd.Flags().StringVar(&profileEmail, "email", "", "email address")
	accountSetCmd.Flags().StringVar(&profileDOB, "dob", "", "date of birth (YYYY-MM-DD)")
	accountSetCmd.Flags().StringVar(&profileJobTitle, "job-title", "", "job title")
	accountSetCmd.Flags().StringVar(&profileBio, "bio", "", "short bio")
	accountDeleteCmd.Flags().BoolVar(&accountDeleteYes, "yes", false, "skip the confirmation prompt")

	accountCmd.AddCommand(accountShowCmd, accountSetCmd, accountDeleteCmd)
}
