package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/shelfscan/internal/models"
)

// modelsCmd represents the models command.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the ONNX models used by the scan pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		dir := models.GetModelsDir(cfg.ModelsDir)

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Models directory: %s\n\n", dir); err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tFILE\tDESCRIPTION")
		for _, m := range models.ListAvailableModels() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Name, m.Type, m.Filename, m.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
