package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/shelfscan/internal/scan"
	"github.com/MeKo-Tech/shelfscan/internal/utils"
)

const (
	outputFormatJSON = "json"
	outputFormatYAML = "yaml"
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan product photos into catalog records",
	Long: `Process one or more product photographs and print a catalog record
for each. Barcodes and QR codes win over text recognition, which in
turn feeds the image classifier fallback.

Supported formats: JPEG, PNG, BMP

Examples:
  shelfscan scan photo.jpg
  shelfscan scan *.png --format yaml
  shelfscan scan box.jpg --output record.json`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()

		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}
		outputFile := cfg.Output.File
		if cmd.Flags().Changed("output") {
			outputFile, _ = cmd.Flags().GetString("output")
		}
		if format != outputFormatJSON && format != outputFormatYAML {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)",
				format, strings.Join([]string{outputFormatJSON, outputFormatYAML}, ", "))
		}

		topK := cfg.Pipeline.Classifier.TopK
		if cmd.Flags().Changed("top-k") {
			topK, _ = cmd.Flags().GetInt("top-k")
		}
		minConf := cfg.Pipeline.Recognizer.MinConfidence
		if cmd.Flags().Changed("min-text-conf") {
			minConf, _ = cmd.Flags().GetFloat64("min-text-conf")
		}
		if minConf < 0 || minConf > 1 {
			return fmt.Errorf("invalid text confidence threshold: %.2f (must be between 0.0 and 1.0)", minConf)
		}

		clsModel := cfg.Pipeline.Classifier.ModelPath
		if cmd.Flags().Changed("cls-model") {
			clsModel, _ = cmd.Flags().GetString("cls-model")
		}
		recModel := cfg.Pipeline.Recognizer.ModelPath
		if cmd.Flags().Changed("rec-model") {
			recModel, _ = cmd.Flags().GetString("rec-model")
		}
		dictPath := cfg.Pipeline.Recognizer.DictPath
		if cmd.Flags().Changed("dict") {
			dictPath, _ = cmd.Flags().GetString("dict")
		}

		b := scan.NewBuilder().
			WithModelsDir(cfg.ModelsDir).
			WithClassifierModelPath(clsModel).
			WithLabelsPath(cfg.Pipeline.Classifier.LabelsPath).
			WithRecognizerModelPath(recModel).
			WithDictionaryPath(dictPath).
			WithThreads(cfg.Pipeline.Classifier.NumThreads).
			WithTopK(topK).
			WithMinTextConfidence(minConf)

		scanner, err := b.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize scan pipeline: %w", err)
		}
		defer func() { _ = scanner.Close() }()

		var out strings.Builder
		for _, path := range args {
			img, _, err := utils.LoadImage(path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}

			res, err := scanner.ProcessImage(cmd.Context(), img)
			if err != nil {
				return fmt.Errorf("failed to scan %s: %w", path, err)
			}

			rendered, err := renderResult(res, format)
			if err != nil {
				return err
			}
			out.WriteString(rendered)
			if !strings.HasSuffix(rendered, "\n") {
				out.WriteString("\n")
			}
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(out.String()), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), out.String())
		return err
	},
}

// renderResult formats a scan result in the requested output format.
func renderResult(res *scan.ScanResult, format string) (string, error) {
	switch format {
	case outputFormatYAML:
		return res.ToYAML()
	default:
		return res.ToJSON()
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringP("format", "f", "json", "output format (json, yaml)")
	scanCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	scanCmd.Flags().Int("top-k", 3, "number of classifier predictions to keep")
	scanCmd.Flags().Float64("min-text-conf", 0.3, "minimum text recognition confidence (0..1)")
	scanCmd.Flags().String("cls-model", "", "override classification model path")
	scanCmd.Flags().String("rec-model", "", "override recognition model path")
	scanCmd.Flags().String("dict", "", "override recognition dictionary path")
}
