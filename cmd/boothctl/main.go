// boothctl is the operator's command-line companion for a running or
// offline booth: it inspects the session database and exports the data
// sheet without going through the HTTP API.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/playlistx/photoboothbackend/database"
	"github.com/playlistx/photoboothbackend/models"
)

var dbPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "boothctl",
		Short: "Operator tooling for the photobooth kiosk",
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath(), "path to the booth database")

	resultsCmd := &cobra.Command{
		Use:   "results",
		Short: "Inspect completed booth sessions",
	}
	resultsCmd.AddCommand(newListCmd(), newExportCmd())
	rootCmd.AddCommand(resultsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultDBPath() string {
	if env := os.Getenv("DATABASE_PATH"); env != "" {
		return env
	}
	return filepath.Join(".", "booth_data", "photobooth.db")
}

func loadRows() ([]database.ExportRow, error) {
	db, err := database.OpenExportDB(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return database.ListResultsForExport(db)
}

// decodeRow parses the JSON columns of an export row, tolerating rows
// written by older schema versions.
func decodeRow(row database.ExportRow) (models.UserInfo, models.ThemeSelection) {
	var user models.UserInfo
	var theme models.ThemeSelection
	if row.UserInfo != "" {
		_ = json.Unmarshal([]byte(row.UserInfo), &user)
	}
	if row.SelectedTheme != "" {
		_ = json.Unmarshal([]byte(row.SelectedTheme), &theme)
	}
	return user, theme
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List completed sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := loadRows()
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"ID", "Name", "Email", "Phone", "Theme", "Created At"})
			for _, row := range rows {
				user, theme := decodeRow(row)
				t.AppendRow(table.Row{row.ID, user.Name, user.Email, user.Phone, theme.Tag(), row.CreatedAt})
			}
			t.AppendFooter(table.Row{"", "", "", "", "Total", len(rows)})
			if isatty.IsTerminal(os.Stdout.Fd()) {
				t.SetStyle(table.StyleRounded)
			}
			t.Render()
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all sessions as a CSV data sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := loadRows()
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = fmt.Sprintf("photobooth-data-%s.csv", time.Now().Format("20060102-150405"))
			}
			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create export file '%s': %w", outPath, err)
			}
			defer out.Close()

			writer := csv.NewWriter(out)
			if err := writer.Write([]string{"ID", "Name", "Email", "Phone", "Theme", "Photo Path", "Created At", "Updated At"}); err != nil {
				return fmt.Errorf("failed to write CSV header: %w", err)
			}
			for _, row := range rows {
				user, theme := decodeRow(row)
				record := []string{row.ID, user.Name, user.Email, user.Phone, theme.Tag(), row.PhotoPath, row.CreatedAt, row.UpdatedAt}
				if err := writer.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			writer.Flush()
			if err := writer.Error(); err != nil {
				return fmt.Errorf("failed to flush CSV: %w", err)
			}

			fmt.Printf("Exported %d sessions to %s\n", len(rows), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output file path (default photobooth-data-<timestamp>.csv)")
	return cmd
}
