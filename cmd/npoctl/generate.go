package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/dalemusser/npoconnect/internal/app/system/export"
	"github.com/dalemusser/npoconnect/internal/app/system/generation"
	"github.com/dalemusser/npoconnect/internal/app/system/markup"
	"github.com/dalemusser/npoconnect/internal/app/system/timeouts"
)

// generators maps the CLI tool names to their request type and export title.
var generators = map[string]struct {
	title string
	req   func() generation.Request
}{
	"proposal": {"Business Proposal", func() generation.Request { return &generation.ProposalData{} }},
	"report":   {"Monthly Report", func() generation.Request { return &generation.MonthlyReportData{} }},
	"donors":   {"Donor Match", func() generation.Request { return &generation.DonorMatchData{} }},
}

var generateCmd = &cobra.Command{
	Use:   "generate proposal|report|donors",
	Short: "Generate a proposal, monthly report or donor match",
	Long: `Generate reads the tool's form fields from a YAML file (or stdin with
--file -) and prints the generated document as plain text. Every field is
required. Field names match the web form, for example:

  npoName: Green Future Trust
  npoMission: Planting trees in Soweto schools
  projectTitle: ...

Use --out to save an export (html, markdown or text, see --format).`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"proposal", "report", "donors"},
	RunE: func(cmd *cobra.Command, args []string) error {
		tool, ok := generators[args[0]]
		if !ok {
			return fmt.Errorf("unknown tool %q (want proposal, report or donors)", args[0])
		}

		path, _ := cmd.Flags().GetString("file")
		req, err := readPayload(cmd.InOrStdin(), path, tool.req())
		if err != nil {
			return err
		}

		logger := newLogger()
		defer logger.Sync()

		gen, err := newOrchestrator(cmd.Context(), logger)
		if err != nil {
			return err
		}

		ctx, cancel := timeouts.WithTimeout(cmd.Context(), timeouts.Generation(), logger, string(req.Kind()))
		defer cancel()

		fmt.Fprintln(cmd.ErrOrStderr(), "Generating...")
		res, err := gen.Generate(ctx, req)
		if err != nil {
			return err
		}

		printResult(cmd.OutOrStdout(), res)

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			return nil
		}
		format, _ := cmd.Flags().GetString("format")
		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			title = tool.title
		}
		return saveExport(outPath, export.Document{Title: title, Content: res.Text}, format, logger)
	},
}

func init() {
	generateCmd.Flags().StringP("file", "f", "", "YAML payload file, - for stdin")
	generateCmd.Flags().StringP("out", "o", "", "also export the document to this path (a directory picks the default filename)")
	generateCmd.Flags().String("format", string(export.FormatHTML), "export format: html, markdown or text")
	generateCmd.Flags().String("title", "", "export title (default: the tool name)")
	_ = generateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(generateCmd)
}

// readPayload decodes YAML from path (or stdin for "-") into req. Unknown
// fields are rejected.
func readPayload(stdin io.Reader, path string, req generation.Request) (generation.Request, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening payload: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(req); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	return req, nil
}

func printResult(w io.Writer, res generation.Result) {
	fmt.Fprintln(w, markup.PlainText(res.Text))
	if len(res.Sources) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sources:")
	for i, c := range res.Sources {
		fmt.Fprintf(w, "  %d. %s <%s>\n", i+1, c.Title, c.URI)
	}
}

func saveExport(path string, doc export.Document, format string, logger *zap.Logger) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, export.Filename(doc.Title, f))
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	if err := export.Write(out, doc, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", export.ErrExport, err)
	}
	logger.Info("document exported", zap.String("path", path), zap.String("format", string(f)))
	return nil
}
