package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/ingestion"
)

var fetchJobUseBrowser bool

var fetchJobCmd = &cobra.Command{
	Use:   "fetch-job <url>",
	Short: "Fetch a job posting and print its extracted text",
	Long:  `Retrieve a job posting from a URL and print the plain text that would be used as target-job context. Useful for checking what the assistant will see before pointing the server at the URL.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFetchJob,
}

func init() {
	fetchJobCmd.Flags().BoolVar(&fetchJobUseBrowser, "use-browser", false, "Render JavaScript-heavy pages in headless Chrome (requires Chrome)")
	rootCmd.AddCommand(fetchJobCmd)
}

func runFetchJob(cmd *cobra.Command, args []string) error {
	opts := ingestion.DefaultOptions()
	opts.UseBrowser = fetchJobUseBrowser

	result, err := ingestion.FetchJobPosting(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	fmt.Println(result.Text)
	return nil
}
