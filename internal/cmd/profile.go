package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swasthaai/swastha-cli/internal/api"
	"github.com/swasthaai/swastha-cli/internal/validate"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
}

var (
	profileFirstName string
	profileLastName  string
	profileDOB       string
	profileGender    string
	profileRole      string
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update basic profile information",
	RunE:  runProfileUpdate,
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileFirstName, "first-name", "", "first name (required)")
	profileUpdateCmd.Flags().StringVar(&profileLastName, "last-name", "", "last name (required)")
	profileUpdateCmd.Flags().StringVar(&profileDOB, "dob", "", "date of birth YYYY-MM-DD (required)")
	profileUpdateCmd.Flags().StringVar(&profileGender, "gender", "", "gender (required)")
	profileUpdateCmd.Flags().StringVar(&profileRole, "role", "", "account type: patient or doctor (required)")
	_ = profileUpdateCmd.MarkFlagRequired("first-name")
	_ = profileUpdateCmd.MarkFlagRequired("last-name")
	_ = profileUpdateCmd.MarkFlagRequired("dob")
	_ = profileUpdateCmd.MarkFlagRequired("gender")
	_ = profileUpdateCmd.MarkFlagRequired("role")

	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	info := api.BasicInfo{
		FirstName:   profileFirstName,
		LastName:    profileLastName,
		DateOfBirth: profileDOB,
		Gender:      profileGender,
		Role:        profileRole,
	}
	if err := validate.Struct(info); err != nil {
		return err
	}

	if err := app.User.UpdateBasicInfo(cmd.Context(), info); err != nil {
		return err
	}

	fmt.Println("Profile updated.")
	return nil
}
