package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coolbeans/lawchunk/internal/api"
	"github.com/coolbeans/lawchunk/internal/chunk"
	"github.com/coolbeans/lawchunk/internal/config"
	"github.com/coolbeans/lawchunk/internal/lines"
	"github.com/coolbeans/lawchunk/internal/pipeline"
	"github.com/coolbeans/lawchunk/internal/search"
	"github.com/coolbeans/lawchunk/internal/store"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lawchunk",
		Short: "Housing code chunker",
		Long: `Lawchunk turns a hierarchically structured legal code into a
retrieval corpus of addressable chunks.

It recognizes subchapter/article/section structure in OCR-noisy page
text, resolves cross-references between sections, and emits one
metadata-rich JSON record per chunk, grouped by structural level.`,
		Version: version,
	}

	rootCmd.AddCommand(chunkCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func chunkCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "chunk <document>",
		Short: "Chunk a document into a retrieval corpus",
		Long: `Chunk a legal code document into section, article, and subchapter
records.

Supported formats: PDF, TXT, MD, HTML, DOCX, CSV

Example:
  lawchunk chunk HousingMaintenanceCode.pdf --out chunks`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := slog.New(slog.NewTextHandler(os.Stderr, nil))

			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			src, err := lines.ForFile(f, path, cfg.PDFFallbackPdftotext)
			if err != nil {
				return err
			}

			result, err := pipeline.Run(src, chunk.Config{DocTitle: cfg.DocTitle, DocChapter: cfg.DocChapter}, log)
			if err != nil {
				return err
			}

			if err := store.New(outDir).Save(result.Chunks, result.CrossRefs, result.Index); err != nil {
				return err
			}

			fmt.Printf("Chunked %s into %s/\n", path, outDir)
			fmt.Printf("  Subchapters: %d\n", result.Stats.Subchapters)
			fmt.Printf("  Articles:    %d\n", result.Stats.Articles)
			fmt.Printf("  Sections:    %d\n", result.Stats.Sections)
			fmt.Printf("  Est. tokens: %d\n", result.Stats.TotalTokens)
			if result.Stats.RecognitionMisses > 0 {
				fmt.Printf("  Recognition misses: %d\n", result.Stats.RecognitionMisses)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "chunks", "output corpus directory")
	return cmd
}

func searchCmd() *cobra.Command {
	var dir string
	var top int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Keyword search over a chunked corpus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := store.New(dir).Load()
			if err != nil {
				return err
			}
			query := joinArgs(args)
			results := search.New(corpus).Search(query, top)
			if len(results) == 0 {
				fmt.Println("No matching chunks.")
				return nil
			}
			for _, r := range results {
				fmt.Printf("%3d  %-24s %s\n", r.Score, r.ChunkID, r.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "chunks", "corpus directory")
	cmd.Flags().IntVar(&top, "top", 5, "number of results")
	return cmd
}

func askCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a housing-code question from the corpus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := store.New(dir).Load()
			if err != nil {
				return err
			}
			answer := search.New(corpus).Ask(joinArgs(args))
			fmt.Println(answer.Text)
			if len(answer.Sources) > 0 {
				fmt.Println("\nSources:")
				for _, src := range answer.Sources {
					fmt.Printf("  - %s (relevance %d)\n", src.Title, src.Score)
				}
			}
			if len(answer.RelatedSections) > 0 {
				fmt.Printf("\nRelated sections: %v\n", answer.RelatedSections)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "chunks", "corpus directory")
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API over the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			cfg := config.Load()

			srv := api.NewServer(log, cfg)
			httpServer := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      srv,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Graceful shutdown.
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				log.Info("shutting down...")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				httpServer.Shutdown(shutdownCtx)
			}()

			log.Info("starting lawchunk", "port", cfg.Port, "chunks_dir", cfg.ChunksDir)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}

func joinArgs(args []string) string {
	out := args[0]
	for _, a := range args[1:] {
		out += " " + a
	}
	return out
}
