package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jsench/Project-Wheatley/src/dtos"
	"github.com/jsench/Project-Wheatley/src/services"
	"github.com/jsench/Project-Wheatley/src/utils"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv|drive-url>",
	Short: "Imports census copies from a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := openDB()
		if err != nil {
			return err
		}
		drive := utils.NewDriveDownloader(cfg.DriveCredentialsPath, cfg.DriveCredentialsJSON, logger)
		svc := services.NewImportService(gdb, drive, logger)

		source := args[0]
		var result *dtos.ImportResultDTO
		if utils.IsGoogleDriveURL(source) {
			result, err = svc.ImportURL(cmd.Context(), source)
		} else {
			f, ferr := os.Open(source)
			if ferr != nil {
				return ferr
			}
			defer f.Close()
			result, err = svc.ImportFile(cmd.Context(), f, filepath.Base(source))
		}

		if result != nil {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %s copies\n", humanize.Comma(int64(result.Imported)))
			for _, e := range result.Errors {
				fmt.Fprintln(out, "  "+e)
			}
		}
		return err
	},
}
