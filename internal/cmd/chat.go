package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swasthaai/swastha-cli/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the AI health assistant",
	Long: `Open an interactive conversation with the AI health assistant, or ask a
single question with 'chat ask'.`,
	RunE: runChat,
}

var chatFileFlag string

var chatAskCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the assistant a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChatAsk,
}

func init() {
	chatAskCmd.Flags().StringVar(&chatFileFlag, "file", "", "attach a document (e.g. a prescription) to the question")

	chatCmd.AddCommand(chatAskCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}
	return tui.RunChat(app.AI)
}

func runChatAsk(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")

	if chatFileFlag != "" {
		answer, receipt, err := app.AI.QueryWithFile(cmd.Context(), question, chatFileFlag)
		if err != nil {
			return err
		}
		fmt.Println(answer.Answer)
		printCitations(answer.Citations)
		fmt.Printf("\nAttached %s (%d bytes, blake3 %s)\n", receipt.Name, receipt.Size, receipt.Checksum)
		return nil
	}

	answer, err := app.AI.Query(cmd.Context(), question)
	if err != nil {
		return err
	}
	fmt.Println(answer.Answer)
	printCitations(answer.Citations)
	return nil
}

func printCitations(citations []string) {
	if len(citations) == 0 {
		return
	}
	fmt.Printf("\nSources: %s\n", strings.Join(citations, ", "))
}
