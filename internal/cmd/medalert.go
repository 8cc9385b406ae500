package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swasthaai/swastha-cli/internal/medalert"
	"github.com/swasthaai/swastha-cli/internal/tui"
	"github.com/swasthaai/swastha-cli/internal/validate"
)

var medalertCmd = &cobra.Command{
	Use:     "medalert",
	Aliases: []string{"ma"},
	Short:   "Manage medication reminders and categories",
}

var medalertShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch and display all categories and reminders",
	RunE:  runMedalertShow,
}

// category subcommands

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage reminder categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE:  runCategoryList,
}

var (
	categoryName        string
	categoryDescription string
	categoryColor       string
)

var categoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	RunE:  runCategoryCreate,
}

var categoryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryUpdate,
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryDelete,
}

// reminder subcommands

var reminderCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Manage medication reminders",
}

var reminderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	RunE:  runReminderList,
}

var (
	reminderCategoryID string
	reminderMedicine   string
	reminderDosage     string
	reminderFrequency  string
	reminderStartDate  string
	reminderEndDate    string
	reminderNotes      string
	reminderForm       string
	reminderTimes      string
)

var reminderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a reminder",
	RunE:  runReminderCreate,
}

var reminderUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a reminder",
	Args:  cobra.ExactArgs(1),
	RunE:  runReminderUpdate,
}

var reminderDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE:  runReminderDelete,
}

var reminderPauseCmd = &cobra.Command{
	Use:   "pause <id>",
	Short: "Toggle a reminder's pause state",
	Args:  cobra.ExactArgs(1),
	RunE:  runReminderPause,
}

func init() {
	categoryCreateCmd.Flags().StringVar(&categoryName, "name", "", "category name (required)")
	categoryCreateCmd.Flags().StringVar(&categoryDescription, "description", "", "category description")
	categoryCreateCmd.Flags().StringVar(&categoryColor, "color", "", "display color, e.g. #3b82f6")
	_ = categoryCreateCmd.MarkFlagRequired("name")

	categoryUpdateCmd.Flags().StringVar(&categoryName, "name", "", "category name (required)")
	categoryUpdateCmd.Flags().StringVar(&categoryDescription, "description", "", "category description")
	categoryUpdateCmd.Flags().StringVar(&categoryColor, "color", "", "display color")
	_ = categoryUpdateCmd.MarkFlagRequired("name")

	for _, c := range []*cobra.Command{reminderCreateCmd, reminderUpdateCmd} {
		c.Flags().StringVar(&reminderCategoryID, "category", "", "category id (required)")
		c.Flags().StringVar(&reminderMedicine, "medicine", "", "medicine name (required)")
		c.Flags().StringVar(&reminderDosage, "dosage", "", "dosage, e.g. 5mg (required)")
		c.Flags().StringVar(&reminderFrequency, "frequency", "", "frequency, e.g. daily (required)")
		c.Flags().StringVar(&reminderStartDate, "start", "", "start date YYYY-MM-DD (required)")
		c.Flags().StringVar(&reminderEndDate, "end", "", "end date YYYY-MM-DD")
		c.Flags().StringVar(&reminderNotes, "notes", "", "free-form notes")
		c.Flags().StringVar(&reminderForm, "form", "", "medicine form, e.g. tablet (required)")
		c.Flags().StringVar(&reminderTimes, "times", "", `comma-separated time slots, e.g. "09:00 AM, 08:00 PM"`)
		_ = c.MarkFlagRequired("category")
		_ = c.MarkFlagRequired("medicine")
		_ = c.MarkFlagRequired("dosage")
		_ = c.MarkFlagRequired("frequency")
		_ = c.MarkFlagRequired("start")
		_ = c.MarkFlagRequired("form")
	}

	categoryCmd.AddCommand(categoryListCmd, categoryCreateCmd, categoryUpdateCmd, categoryDeleteCmd)
	reminderCmd.AddCommand(reminderListCmd, reminderCreateCmd, reminderUpdateCmd, reminderDeleteCmd, reminderPauseCmd)
	medalertCmd.AddCommand(medalertShowCmd, categoryCmd, reminderCmd)
	rootCmd.AddCommand(medalertCmd)
}

func runMedalertShow(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	// Both lists are fetched concurrently; one failure yields one error and
	// no partial view.
	categories, reminders, err := app.User.FetchMedAlerts(cmd.Context())
	if err != nil {
		return err
	}
	app.Cache.SetCategories(categories)
	app.Cache.SetReminders(reminders)

	fmt.Print(tui.RenderMedAlerts(app.Cache))
	return nil
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	categories, err := app.User.ListCategories(cmd.Context())
	if err != nil {
		return err
	}
	app.Cache.SetCategories(categories)

	for _, c := range app.Cache.Categories() {
		fmt.Printf("%s  %s\n", c.ID, c.Name)
	}
	return nil
}

func categoryInput() medalert.CategoryInput {
	return medalert.CategoryInput{
		Name:        categoryName,
		Description: categoryDescription,
		Color:       categoryColor,
	}
}

func runCategoryCreate(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	input := categoryInput()
	if err := validate.Struct(input); err != nil {
		return err
	}

	category, err := app.User.CreateCategory(cmd.Context(), input)
	if err != nil {
		return err
	}
	app.Cache.AddCategory(*category)

	fmt.Printf("Created category %s (%s)\n", category.Name, category.ID)
	return nil
}

func runCategoryUpdate(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	input := categoryInput()
	if err := validate.Struct(input); err != nil {
		return err
	}

	category, err := app.User.UpdateCategory(cmd.Context(), args[0], input)
	if err != nil {
		return err
	}
	app.Cache.UpdateCategory(*category)

	fmt.Printf("Updated category %s\n", category.ID)
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	if err := app.User.DeleteCategory(cmd.Context(), args[0]); err != nil {
		return err
	}
	app.Cache.RemoveCategory(args[0])

	fmt.Printf("Deleted category %s\n", args[0])
	return nil
}

func runReminderList(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	reminders, err := app.User.ListReminders(cmd.Context())
	if err != nil {
		return err
	}
	app.Cache.SetReminders(reminders)

	for _, r := range app.Cache.Reminders() {
		line := fmt.Sprintf("%s  %s %s %s", r.ID, r.MedicineName, r.Dosage, r.Frequency)
		if slots := r.FormatTimeSlots(); slots != "" {
			line += "  [" + slots + "]"
		}
		if r.IsPaused {
			line += "  (paused)"
		}
		fmt.Println(line)
	}
	return nil
}

func reminderInput() medalert.ReminderInput {
	return medalert.ReminderInput{
		CategoryID:   reminderCategoryID,
		MedicineName: reminderMedicine,
		Dosage:       reminderDosage,
		Frequency:    reminderFrequency,
		StartDate:    reminderStartDate,
		EndDate:      reminderEndDate,
		Notes:        reminderNotes,
		Form:         reminderForm,
		TimeSlot:     medalert.ParseTimeSlots(reminderTimes),
	}
}

func runReminderCreate(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	input := reminderInput()
	if err := validate.Struct(input); err != nil {
		return err
	}

	reminder, err := app.User.CreateReminder(cmd.Context(), input)
	if err != nil {
		return err
	}
	app.Cache.AddReminder(*reminder)

	fmt.Printf("Created reminder %s (%s)\n", reminder.MedicineName, reminder.ID)
	return nil
}

func runReminderUpdate(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	input := reminderInput()
	if err := validate.Struct(input); err != nil {
		return err
	}

	reminder, err := app.User.UpdateReminder(cmd.Context(), args[0], input)
	if err != nil {
		return err
	}
	app.Cache.UpdateReminder(*reminder)

	fmt.Printf("Updated reminder %s\n", reminder.ID)
	return nil
}

func runReminderDelete(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	if err := app.User.DeleteReminder(cmd.Context(), args[0]); err != nil {
		return err
	}
	app.Cache.RemoveReminder(args[0])

	fmt.Printf("Deleted reminder %s\n", args[0])
	return nil
}

func runReminderPause(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	reminder, err := app.User.PauseReminder(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	app.Cache.UpdateReminder(*reminder)

	state := "resumed"
	if reminder.IsPaused {
		state = "paused"
	}
	fmt.Printf("Reminder %s %s\n", reminder.ID, state)
	return nil
}
