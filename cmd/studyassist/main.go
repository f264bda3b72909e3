package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/studylab/studyassistgo/pkg/assistant"
	"github.com/studylab/studyassistgo/pkg/config"
	"github.com/studylab/studyassistgo/pkg/models"
	"github.com/studylab/studyassistgo/pkg/state"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "bootstrap":
		runBootstrap(args)
	case "ask":
		runAsk(args)
	case "notes":
		runNotes(args)
	case "cleanup":
		runCleanup(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Usage: studyassist <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  bootstrap   upload study materials and create the assistant")
	fmt.Println("  ask         run question/answer turns against the assistant")
	fmt.Println("  notes       generate structured exam notes")
	fmt.Println("  cleanup     delete remote resources and local state")
}

// setup loads config and builds the API client shared by every command
func setup(fs *flag.FlagSet, args []string) (config.Config, *assistant.Client) {
	configPath := fs.String("config", "", "Path to a config file")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		log.Fatalf("API key required. Set %s in the environment", cfg.APIKeyEnv)
	}

	client := assistant.NewClient(apiKey, assistant.WithBaseURL(cfg.BaseURL))
	return cfg, client
}

func runBootstrap(args []string) {
	fs := flag.NewFlagSet("bootstrap", flag.ExitOnError)
	cfg, client := setup(fs, args)
	ctx := context.Background()

	pdfs, err := filepath.Glob(filepath.Join(cfg.DataDir, "*.pdf"))
	if err != nil {
		log.Fatalf("Failed to scan data directory: %v", err)
	}

	var fileIDs []string
	for _, path := range pdfs {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", path, err)
		}
		file, err := client.UploadFile(ctx, filepath.Base(path), f)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to upload %s: %v", path, err)
		}
		fmt.Printf("Uploaded %s (%s)\n", file.Filename, file.ID)
		fileIDs = append(fileIDs, file.ID)
	}

	req := models.CreateAssistantRequest{
		Model:        cfg.Assistant.Model,
		Name:         cfg.Assistant.Name,
		Instructions: cfg.Assistant.Instructions,
		Tools:        []models.Tool{{Type: models.ToolTypeFileSearch}},
	}

	if len(fileIDs) > 0 {
		store, err := client.CreateVectorStore(ctx, cfg.Assistant.Name, fileIDs)
		if err != nil {
			log.Fatalf("Failed to create vector store: %v", err)
		}
		if err := state.SaveVectorStoreID(cfg.StateDir, store.ID); err != nil {
			log.Fatalf("Failed to save vector store id: %v", err)
		}
		fmt.Printf("Created vector store %s over %d files\n", store.ID, len(fileIDs))

		req.ToolResources = &models.ToolResources{
			FileSearch: &models.FileSearchResources{VectorStoreIDs: []string{store.ID}},
		}
	} else {
		fmt.Printf("No PDF files found in %q; creating assistant without a knowledge base\n", cfg.DataDir)
	}

	a, err := client.CreateAssistant(ctx, req)
	if err != nil {
		log.Fatalf("Failed to create assistant: %v", err)
	}
	if err := state.SaveAssistantID(cfg.StateDir, a.ID); err != nil {
		log.Fatalf("Failed to save assistant id: %v", err)
	}

	fmt.Printf("Created assistant %q (%s)\n", a.Name, a.ID)
	fmt.Println("Ready: run `studyassist ask` to start a Q&A session")
}

func runAsk(args []string) {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Log run status transitions")
	cfg, client := setup(fs, args)
	ctx := context.Background()

	assistantID, err := state.LoadAssistantID(cfg.StateDir)
	if err != nil {
		log.Fatalf("Failed to load assistant id: %v", err)
	}
	if assistantID == "" {
		log.Fatal("No assistant found. Run `studyassist bootstrap` first")
	}

	if _, err := client.GetAssistant(ctx, assistantID); err != nil {
		log.Fatalf("Could not connect to assistant %s: %v", assistantID, err)
	}

	opts := []assistant.RunnerOption{
		assistant.WithDelayStrategy(assistant.FixedDelay(time.Duration(cfg.PollIntervalSeconds) * time.Second)),
	}
	if cfg.AskTimeoutSeconds > 0 {
		opts = append(opts, assistant.WithWaitBudget(time.Duration(cfg.AskTimeoutSeconds)*time.Second))
	}
	if *verbose {
		opts = append(opts, assistant.WithLogger(assistant.NewStdLogger(log.New(os.Stderr, "", log.LstdFlags))))
	}
	runner := assistant.NewTurnRunner(client, opts...)

	thread, err := client.CreateThread(ctx)
	if err != nil {
		log.Fatalf("Failed to create thread: %v", err)
	}
	fmt.Printf("Created conversation thread %s\n", thread.ID)

	// One-shot mode when a question is given as arguments
	if question := strings.Join(fs.Args(), " "); question != "" {
		askOnce(ctx, runner, thread.ID, assistantID, question)
		return
	}

	fmt.Println("Ask questions about your study materials. Type 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n? ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "quit" || question == "exit" || question == "q" {
			break
		}
		askOnce(ctx, runner, thread.ID, assistantID, question)
	}
}

func askOnce(ctx context.Context, runner *assistant.TurnRunner, threadID, assistantID, question string) {
	answer, err := runner.Ask(ctx, threadID, assistantID, question)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println(answer.Text)
	if len(answer.Citations) > 0 {
		fmt.Println("\nCitations:")
		for _, c := range answer.Citations {
			fmt.Printf("  [%d] %s\n", c.Index, c.FileID)
			if c.Quote != "" {
				fmt.Printf("      %q\n", truncate(c.Quote, 100))
			}
		}
	}
}

// truncate shortens s to at most n runes, never splitting a multi-byte
// character.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func runNotes(args []string) {
	fs := flag.NewFlagSet("notes", flag.ExitOnError)
	cfg, client := setup(fs, args)
	ctx := context.Background()

	pdfs, _ := filepath.Glob(filepath.Join(cfg.DataDir, "*.pdf"))
	var names []string
	for _, p := range pdfs {
		names = append(names, strings.TrimSuffix(filepath.Base(p), ".pdf"))
	}
	notesContext := "General study materials"
	if len(names) > 0 {
		notesContext = "Available study materials: " + strings.Join(names, ", ")
	}

	fmt.Println("Generating notes...")
	doc, err := client.GenerateNotes(ctx, assistant.NotesRequest{
		Model:       cfg.Notes.Model,
		Context:     notesContext,
		Temperature: &cfg.Notes.Temperature,
	})
	if err != nil {
		log.Fatalf("Notes generation failed: %v", err)
	}

	for _, note := range doc.Notes {
		fmt.Printf("\n%2d. %s\n", note.ID, note.Heading)
		fmt.Printf("    %s\n", note.Summary)
		if note.PageRef != nil {
			fmt.Printf("    p. %d\n", *note.PageRef)
		}
	}

	if err := state.SaveNotes(cfg.StateDir, doc); err != nil {
		log.Fatalf("Failed to save notes: %v", err)
	}
	fmt.Printf("\nSaved %d notes to %s\n", len(doc.Notes), filepath.Join(cfg.StateDir, state.NotesFile))
}

func runCleanup(args []string) {
	fs := flag.NewFlagSet("cleanup", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	cfg, client := setup(fs, args)
	ctx := context.Background()

	if !*yes {
		fmt.Println("This deletes the assistant, vector store, uploaded files and local state files.")
		fmt.Print("Proceed? (yes/no): ")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "yes" && answer != "y" {
			fmt.Println("Cleanup cancelled")
			return
		}
	}

	if assistantID, err := state.LoadAssistantID(cfg.StateDir); err != nil {
		log.Printf("Failed to load assistant id: %v", err)
	} else if assistantID != "" {
		if _, err := client.DeleteAssistant(ctx, assistantID); err != nil {
			log.Printf("Failed to delete assistant %s: %v", assistantID, err)
		} else {
			fmt.Printf("Deleted assistant %s\n", assistantID)
		}
	}

	if storeID, err := state.LoadVectorStoreID(cfg.StateDir); err != nil {
		log.Printf("Failed to load vector store id: %v", err)
	} else if storeID != "" {
		if _, err := client.DeleteVectorStore(ctx, storeID); err != nil {
			log.Printf("Failed to delete vector store %s: %v", storeID, err)
		} else {
			fmt.Printf("Deleted vector store %s\n", storeID)
		}
	}

	files, err := client.ListFiles(ctx)
	if err != nil {
		log.Printf("Failed to list files: %v", err)
	}
	for _, f := range files {
		if f.Purpose != models.FilePurposeAssistants {
			continue
		}
		if _, err := client.DeleteFile(ctx, f.ID); err != nil {
			log.Printf("Failed to delete file %s: %v", f.ID, err)
			continue
		}
		fmt.Printf("Deleted file %s (%s)\n", f.Filename, f.ID)
	}

	removed, err := state.Remove(cfg.StateDir, state.AssistantFile, state.VectorStoreFile, state.NotesFile)
	if err != nil {
		log.Printf("Failed to remove local state: %v", err)
	}
	for _, name := range removed {
		fmt.Printf("Removed %s\n", name)
	}

	fmt.Println("Cleanup complete")
}
