package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	businessID string
	courtName  string
	date       string
)

func init() {
	generateCmd.Flags().StringVar(&businessID, "business", "", "Public id of the business")
	generateCmd.Flags().StringVar(&courtName, "court", "", "Name of the court")
	generateCmd.Flags().StringVar(&date, "date", "", "Date of the matches (YYYY-MM-DD)")
	generateAllCmd.Flags().StringVar(&businessID, "business", "", "Public id of the business")
	generateAllCmd.Flags().StringVar(&date, "date", "", "Date of the matches (YYYY-MM-DD)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(generateAllCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the matches in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate matches for one court on a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("businessID", businessID)
		q.Set("courtName", courtName)
		q.Set("date", date)
		return performPostRequest("/matches/generation?" + q.Encode())
	},
}

var generateAllCmd = &cobra.Command{
	Use:   "generate-all",
	Short: "Generate matches for all courts of a business on a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("businessID", businessID)
		q.Set("date", date)
		return performPostRequest("/matches/generation/all?" + q.Encode())
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
