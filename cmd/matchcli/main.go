package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/bootstrap"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/config"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/domain"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/observability/logging"
)

const serviceName = "matchcli"

type cliFlags struct {
	resumePath string
	resumeText string
	jdPath     string
	jdText     string

	taxonomyPath string
	ollamaURL    string
	embedModel   string
	noOCR        bool
	asJSON       bool
}

func main() {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:          "matchcli",
		Short:        "Score a resume against a job description",
		Long:         "matchcli extracts text from a resume, matches both documents against the skill taxonomy and prints the combined fit score with feedback.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatch(cmd, flags)
		},
	}

	root.Flags().StringVarP(&flags.resumePath, "resume", "r", "", "path to the resume file (.pdf or .txt)")
	root.Flags().StringVar(&flags.resumeText, "resume-text", "", "resume text passed inline, skips file extraction")
	root.Flags().StringVarP(&flags.jdPath, "jd", "j", "", "path to the job description text file")
	root.Flags().StringVar(&flags.jdText, "jd-text", "", "job description passed inline")
	root.Flags().StringVar(&flags.taxonomyPath, "taxonomy", "", "path to a taxonomy YAML file (default: built-in taxonomy)")
	root.Flags().StringVar(&flags.ollamaURL, "ollama-url", "", "Ollama base URL (default: OLLAMA_URL or http://localhost:11434)")
	root.Flags().StringVar(&flags.embedModel, "model", "", "embedding model name (default: OLLAMA_EMBED_MODEL or nomic-embed-text)")
	root.Flags().BoolVar(&flags.noOCR, "no-ocr", false, "disable the OCR fallback for scanned documents")
	root.Flags().BoolVar(&flags.asJSON, "json", false, "print the raw report as JSON")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMatch(cmd *cobra.Command, flags *cliFlags) error {
	slog.SetDefault(logging.NewJSONLogger(serviceName, "warn"))

	req, err := buildRequest(flags)
	if err != nil {
		return err
	}

	cfg := config.Load()
	if flags.taxonomyPath != "" {
		cfg.TaxonomyPath = flags.taxonomyPath
	}
	if flags.ollamaURL != "" {
		cfg.OllamaURL = flags.ollamaURL
	}
	if flags.embedModel != "" {
		cfg.OllamaEmbedModel = flags.embedModel
	}
	if flags.noOCR {
		cfg.OCREnabled = false
	}

	app, err := bootstrap.New(cfg, serviceName)
	if err != nil {
		return err
	}

	report, err := app.Matcher.Match(cmd.Context(), req)
	if err != nil {
		switch {
		case domain.IsKind(err, domain.ErrInvalidInput):
			return fmt.Errorf("resume rejected: %w", err)
		case domain.IsKind(err, domain.ErrCapabilityUnavailable):
			return fmt.Errorf("embedding backend unavailable, is Ollama running at %s? %w", cfg.OllamaURL, err)
		default:
			return err
		}
	}

	if flags.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderReport(report))
	return nil
}

func buildRequest(flags *cliFlags) (domain.MatchRequest, error) {
	req := domain.MatchRequest{}

	switch {
	case flags.resumeText != "":
		req.Resume.ManualText = flags.resumeText
	case flags.resumePath != "":
		data, err := os.ReadFile(flags.resumePath)
		if err != nil {
			return domain.MatchRequest{}, fmt.Errorf("read resume: %w", err)
		}
		req.Resume.Data = data
		req.Resume.Filename = filepath.Base(flags.resumePath)
		if strings.EqualFold(filepath.Ext(flags.resumePath), ".txt") {
			req.Resume.Kind = domain.KindPlainText
		} else {
			req.Resume.Kind = domain.KindPDF
		}
	default:
		return domain.MatchRequest{}, errors.New("either --resume or --resume-text is required")
	}

	switch {
	case flags.jdText != "":
		req.JobDescription = flags.jdText
	case flags.jdPath != "":
		data, err := os.ReadFile(flags.jdPath)
		if err != nil {
			return domain.MatchRequest{}, fmt.Errorf("read job description: %w", err)
		}
		req.JobDescription = string(data)
	default:
		return domain.MatchRequest{}, errors.New("either --jd or --jd-text is required")
	}

	return req, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1)
	scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginTop(1)
)

func renderReport(report *domain.MatchReport) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Resume / Job Description Match"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Combined score", scoreStyle.Render(fmt.Sprintf("%.2f / 100", report.CombinedScore)))
	row("Semantic score", fmt.Sprintf("%.2f", report.SemanticScore))
	row("Keyword score", fmt.Sprintf("%.2f", report.KeywordScore))
	row("Matched skills", domain.RenderSkillList(report.Matched))
	row("Missing skills", domain.RenderSkillList(report.Missing))
	row("Extra skills", domain.RenderSkillList(report.Extra))
	row("Extraction", report.ExtractionStrategy)
	if report.LowConfidence {
		row("Confidence", warnStyle.Render("low, extracted text was sparse"))
	}

	b.WriteString(boxStyle.Render(report.Feedback))
	b.WriteString("\n")
	return b.String()
}
