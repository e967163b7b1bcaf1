package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-docgen/pkg/config"
	"github.com/goliatone/go-docgen/pkg/orchestrator"
	"github.com/goliatone/go-docgen/pkg/plan"
	"github.com/goliatone/go-docgen/pkg/preview"
	"github.com/goliatone/go-docgen/pkg/renderers/markdown"
	"github.com/goliatone/go-docgen/pkg/renderers/zonbook"
	"github.com/goliatone/go-docgen/pkg/templates"
	"github.com/goliatone/go-docgen/pkg/validation"
)

const usage = `usage: docgen-cli <command> [flags]

commands:
  render     render a content plan into a document
  preview    render a content plan and convert it to sanitized HTML
  check      validate a content plan structurally
  templates  list available templates
  setup      configure workspace and default output format
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	switch os.Args[1] {
	case "render":
		runRender(os.Args[2:], settings)
	case "preview":
		runPreview(os.Args[2:], settings)
	case "check":
		runCheck(os.Args[2:])
	case "templates":
		runTemplates(os.Args[2:], settings)
	case "setup":
		runSetup(settings)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

func runRender(args []string, settings config.Settings) {
	flags := flag.NewFlagSet("render", flag.ExitOnError)
	planPath := flags.String("plan", "", "content plan path or URL")
	format := flags.String("format", "", "output format (markdown or zonbook)")
	templateName := flags.String("template", "", "stored template name or path to render with")
	output := flags.String("output", "", "output file (derived from the plan path if empty, - for stdout)")
	_ = flags.Parse(args)

	if *planPath == "" {
		log.Fatalf("render: -plan is required")
	}

	target := *format
	if target == "" {
		target = settings.User.DefaultFormat
	}

	gen := orchestrator.New(
		orchestrator.WithTemplateStore(newStore(settings)),
		orchestrator.WithDefaultRenderer(target),
	)

	document, err := gen.Generate(context.Background(), orchestrator.Request{
		Source:   parseSource(*planPath),
		Renderer: target,
		Template: *templateName,
	})
	if err != nil {
		log.Fatalf("Failed to generate document: %v", err)
	}

	destination := *output
	if destination == "" {
		renderer, err := gen.RendererFor(target)
		if err != nil {
			log.Fatalf("Failed to resolve renderer: %v", err)
		}
		destination = replaceExtension(*planPath, renderer.FileExtension())
	}

	writeOutput(destination, document)
}

func runPreview(args []string, settings config.Settings) {
	flags := flag.NewFlagSet("preview", flag.ExitOnError)
	planPath := flags.String("plan", "", "content plan path or URL")
	title := flags.String("title", "Documentation preview", "page title")
	output := flags.String("output", "", "output file (derived from the plan path if empty, - for stdout)")
	_ = flags.Parse(args)

	if *planPath == "" {
		log.Fatalf("preview: -plan is required")
	}

	gen := orchestrator.New(orchestrator.WithTemplateStore(newStore(settings)))
	document, err := gen.Generate(context.Background(), orchestrator.Request{
		Source:   parseSource(*planPath),
		Renderer: "markdown",
	})
	if err != nil {
		log.Fatalf("Failed to generate document: %v", err)
	}

	converter, err := preview.New()
	if err != nil {
		log.Fatalf("Failed to initialise preview: %v", err)
	}
	page, err := converter.HTML(*title, document)
	if err != nil {
		log.Fatalf("Failed to build preview: %v", err)
	}

	destination := *output
	if destination == "" {
		destination = replaceExtension(*planPath, ".html")
	}
	writeOutput(destination, page)
}

func runCheck(args []string) {
	flags := flag.NewFlagSet("check", flag.ExitOnError)
	planPath := flags.String("plan", "", "content plan path")
	_ = flags.Parse(args)

	if *planPath == "" {
		log.Fatalf("check: -plan is required")
	}

	raw, err := os.ReadFile(*planPath)
	if err != nil {
		log.Fatalf("Failed to read plan: %v", err)
	}
	doc, err := plan.NewDocument(plan.SourceFromFile(*planPath), raw)
	if err != nil {
		log.Fatalf("Failed to wrap plan: %v", err)
	}

	result := validation.New().Validate(context.Background(), doc)
	if result.Valid {
		fmt.Println("Plan is structurally valid.")
		return
	}

	fmt.Printf("Plan has %d issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Printf("  %s: %s\n", issue.Path, issue.Message)
			continue
		}
		fmt.Printf("  %s\n", issue.Message)
	}
	os.Exit(1)
}

func runTemplates(args []string, settings config.Settings) {
	flags := flag.NewFlagSet("templates", flag.ExitOnError)
	_ = flags.Parse(args)

	entries, err := newStore(settings).List()
	if err != nil {
		log.Fatalf("Failed to list templates: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No templates available.")
		return
	}
	for _, entry := range entries {
		if entry.Path != "" {
			fmt.Printf("%-10s %s (%s)\n", entry.Origin, entry.Name, entry.Path)
			continue
		}
		fmt.Printf("%-10s %s\n", entry.Origin, entry.Name)
	}
}

func runSetup(settings config.Settings) {
	workspace := settings.User.WorkspacePath
	if workspace == "" {
		if cwd, err := os.Getwd(); err == nil {
			workspace = cwd
		}
	}
	if err := survey.AskOne(&survey.Input{
		Message: "Workspace path:",
		Default: workspace,
	}, &workspace, survey.WithValidator(survey.Required)); err != nil {
		log.Fatalf("Setup aborted: %v", err)
	}

	format := settings.User.DefaultFormat
	if err := survey.AskOne(&survey.Select{
		Message: "Default output format:",
		Options: []string{"markdown", "zonbook"},
		Default: format,
	}, &format); err != nil {
		log.Fatalf("Setup aborted: %v", err)
	}

	confirm := true
	if err := survey.AskOne(&survey.Confirm{
		Message: fmt.Sprintf("Save settings to %s?", settings.ConfigDir()),
		Default: true,
	}, &confirm); err != nil {
		log.Fatalf("Setup aborted: %v", err)
	}
	if !confirm {
		fmt.Println("Settings not saved.")
		return
	}

	settings.User.WorkspacePath = workspace
	settings.User.DefaultFormat = format
	if err := settings.Save(); err != nil {
		log.Fatalf("Failed to save settings: %v", err)
	}
	fmt.Println("Setup complete.")
}

func newStore(settings config.Settings) *templates.Store {
	return templates.NewStore(
		templates.WithBuiltin("markdown", markdown.TemplatesFS()),
		templates.WithBuiltin("zonbook", zonbook.TemplatesFS()),
		templates.WithUserDir(settings.TemplatesDir()),
	)
}

func parseSource(raw string) plan.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return plan.SourceFromURL(path)
	}
	return plan.SourceFromFile(path)
}

func replaceExtension(path, ext string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + ext
}

func writeOutput(destination string, data []byte) {
	if destination == "-" {
		fmt.Print(string(data))
		return
	}
	if dir := filepath.Dir(destination); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}
	if err := os.WriteFile(destination, data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Document written to %s\n", destination)
}
