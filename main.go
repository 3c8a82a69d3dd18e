package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/contaviva/fatura-extractor/internal/api"
	"github.com/contaviva/fatura-extractor/internal/extractor"
	"github.com/contaviva/fatura-extractor/internal/models"
	"github.com/contaviva/fatura-extractor/internal/statement"
	"github.com/contaviva/fatura-extractor/internal/writer"
)

const version = "1.0.0"

var (
	verboseFlag  bool
	outputFlag   string
	templateFlag string
	headerFlag   bool
	portFlag     int
)

var rootCmd = &cobra.Command{
	Use:     "fatura-extractor",
	Short:   "Extract transactions from credit-card statement PDFs",
	Version: version,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract [flags] <input.pdf> [input2.pdf ...]",
	Short: "Extract the transaction list from statement PDFs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		logger := newLogger()
		ext := statement.New(logger)

		template, err := templateFromFlag(templateFlag)
		if err != nil {
			return err
		}

		multi := len(args) > 1
		for _, inputPath := range args {
			if err := processFile(ext, inputPath, template, multi); err != nil {
				return fmt.Errorf("processing %s: %w", inputPath, err)
			}
		}
		return nil
	},
}

var periodCmd = &cobra.Command{
	Use:   "period <input.pdf>",
	Short: "Infer the billing month/year of a statement PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		logger := newLogger()
		ext := statement.New(logger)

		data, mimeType, err := readInput(args[0])
		if err != nil {
			return err
		}
		period, err := ext.Period(data, mimeType)
		if err != nil {
			return err
		}
		fmt.Printf("%02d/%d\n", int(period.Month), period.Year)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload API",
	RunE: func(_ *cobra.Command, _ []string) error {
		logger := newLogger()
		ext := statement.New(logger)

		app := fiber.New(fiber.Config{
			AppName:   "fatura-extractor v" + version,
			BodyLimit: 32 << 20,
		})
		api.NewHandler(ext, logger).Register(app)

		addr := fmt.Sprintf(":%d", portFlag)
		logger.Info("listening", "addr", addr)
		return app.Listen(addr)
	},
}

func processFile(ext *statement.Extractor, inputPath string, template models.BankTemplate, multi bool) error {
	data, mimeType, err := readInput(inputPath)
	if err != nil {
		return err
	}

	txns, err := ext.TransactionsWithTemplate(data, mimeType, template)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no transactions found. The PDF layout may not match any known issuer pattern; try --template.")
	}

	if outputFlag == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(txns)
	}

	outPath := outputFlag
	if multi {
		// Per-file naming when converting multiple inputs
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		outPath = filepath.Join(filepath.Dir(outputFlag), base+".csv")
	}

	var period *models.BillingPeriod
	if headerFlag {
		if p, err := ext.Period(data, mimeType); err == nil {
			period = &p
		}
	}

	w := &writer.CSVWriter{IncludeHeader: headerFlag}
	if err := w.WriteToFile(outPath, txns, period); err != nil {
		return err
	}
	fmt.Printf("%s: %d transaction(s) -> %s\n", inputPath, len(txns), outPath)
	return nil
}

// readInput loads a file and derives its MIME type from the extension. The
// loader does the authoritative validation.
func readInput(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	mimeType := ""
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		mimeType = extractor.MIMEPDF
	}
	return data, mimeType, nil
}

func templateFromFlag(s string) (models.BankTemplate, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "inter":
		return models.TemplateInter, nil
	case "c6":
		return models.TemplateC6, nil
	case "generic":
		return models.TemplateGeneric, nil
	default:
		return "", fmt.Errorf("unknown template %q (supported: inter, c6, generic)", s)
	}
}

func newLogger() *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "fatura-extractor",
	}
	if verboseFlag {
		opts.Level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, opts)
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	extractCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write CSV to this path instead of JSON to stdout")
	extractCmd.Flags().StringVarP(&templateFlag, "template", "t", "", "Issuer template: inter, c6, generic (auto-detected if omitted)")
	extractCmd.Flags().BoolVar(&headerFlag, "header", true, "Include billing-period header rows in CSV output")
	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 8080, "Port to listen on")

	rootCmd.AddCommand(extractCmd, periodCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
