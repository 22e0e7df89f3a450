package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/cronkite-edu/cronkite/internal/llm"
	"github.com/cronkite-edu/cronkite/internal/pipeline"
	"github.com/cronkite-edu/cronkite/internal/search"
	"github.com/cronkite-edu/cronkite/internal/server"
	"github.com/cronkite-edu/cronkite/internal/source"
	"github.com/cronkite-edu/cronkite/internal/store"
)

var (
	serveAddr      string
	serveStaticDir string
	serveDBPath    string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Cronkite HTTP API",
	Long: `Serve starts the HTTP API: the analysis endpoint, the transcript
endpoint, the static pages, and the authenticated education endpoints.

Example:
  cronkite serve
  cronkite serve --addr :9000 --db cronkite.db`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8000)")
	serveCmd.Flags().StringVar(&serveStaticDir, "static-dir", "", "directory holding the static HTML pages")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "SQLite database path for the education workflow")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveStaticDir != "" {
		cfg.Server.StaticDir = serveStaticDir
	}
	if serveDBPath != "" {
		cfg.Store.Path = serveDBPath
	}

	// A missing LLM key degrades the analysis endpoint instead of refusing
	// to start: the static pages and education endpoints remain usable.
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		log.Printf("Warning: LLM provider unavailable: %v", err)
		provider = nil
	}

	var st *store.Store
	if cfg.Store.Path != "" {
		st, err = store.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
	} else {
		log.Printf("Warning: no database configured, education endpoints disabled")
	}

	sources := source.NewSet(cfg)
	searcher := search.NewClient(cfg.Search)
	pipe := pipeline.New(sources, provider, searcher, cfg.Search.Workers)

	srv := server.New(pipe, sources, st, cfg)
	log.Printf("cronkite listening on %s", cfg.Server.Addr)
	return srv.Router().Run(cfg.Server.Addr)
}
