package fitlog

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shivani123B/fitlog/internal/app"
	"github.com/shivani123B/fitlog/internal/autocomplete"
	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
	"github.com/spf13/cobra"
)

const searchCacheSize = 64

var (
	searchMode        string
	searchJSON        bool
	searchInteractive bool
	searchLimit       int
	searchClearCache  bool
	searchExpiredOnly bool
	usdaBaseURL       string
	offBaseURL        string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods (generic: USDA whole foods, off: Open Food Facts products)",
	Long: `Search foods by name.

Modes:
  generic  USDA FoodData Central whole foods (set FITLOG_USDA_API_KEY, DEMO_KEY otherwise)
  off      Open Food Facts packaged products

With --interactive, each input line is a new query. ":mode <generic|off>"
switches provider and searches the last query again. ":q" quits.

--clear-cache drops stored provider responses (only expired ones with
--expired-only) and exits.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if searchInteractive || searchClearCache {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchLimit < 1 || searchLimit > autocomplete.DefaultMaxResults {
			return fmt.Errorf("limit must be between 1 and %d", autocomplete.DefaultMaxResults)
		}
		return withDB(func(sqldb *sql.DB) error {
			if searchClearCache {
				n, err := service.ClearSearchCache(sqldb, searchExpiredOnly)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached search response(s)\n", n)
				return nil
			}
			if searchInteractive {
				session, err := newSearchSession(sqldb, searchMode, autocomplete.DefaultDebounce, searchLimit)
				if err != nil {
					return err
				}
				defer session.Close()
				return runInteractiveSearch(cmd.InOrStdin(), cmd.OutOrStdout(), session)
			}
			session, err := newSearchSession(sqldb, searchMode, 0, searchLimit)
			if err != nil {
				return err
			}
			defer session.Close()
			results, err := searchOnce(session, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if searchJSON {
				return printJSON(cmd.OutOrStdout(), results)
			}
			printCandidates(cmd.OutOrStdout(), results)
			return nil
		})
	},
}

func newSearchSession(sqldb *sql.DB, mode string, debounce time.Duration, limit int) (*autocomplete.Session, error) {
	ttl, err := service.ConfiguredSearchCacheTTL(sqldb)
	if err != nil {
		return nil, err
	}
	cache, err := autocomplete.NewCache(searchCacheSize)
	if err != nil {
		return nil, err
	}
	fetchers := service.NewSearchFetchers(sqldb, service.SearchOptions{
		USDAAPIKey:  app.USDAAPIKey(),
		USDABaseURL: usdaBaseURL,
		OFFBaseURL:  offBaseURL,
		TTL:         ttl,
		Logger:      logger,
	})
	return autocomplete.NewSession(cache, fetchers, strings.ToLower(strings.TrimSpace(mode)),
		autocomplete.WithDebounce(debounce),
		autocomplete.WithMaxResults(limit),
		autocomplete.WithMinChars(autocomplete.DefaultMinChars),
		autocomplete.WithLogger(logger),
	)
}

// searchOnce feeds query to the session and waits for the settled result.
func searchOnce(session *autocomplete.Session, query string) ([]model.FoodCandidate, error) {
	return settle(session, session.Input(query))
}

// settle waits for the search started by snap, if any.
func settle(session *autocomplete.Session, snap autocomplete.Snapshot) ([]model.FoodCandidate, error) {
	switch snap.State {
	case autocomplete.StateDone:
		return snap.Results, nil
	case autocomplete.StateIdle:
		return nil, fmt.Errorf("search query needs at least %d characters", autocomplete.DefaultMinChars)
	}
	session.Wait()
	snap = session.Snapshot()
	if snap.State == autocomplete.StateError {
		return nil, fmt.Errorf("search %s foods: %w", snap.Mode, snap.Err)
	}
	return snap.Results, nil
}

func runInteractiveSearch(in io.Reader, out io.Writer, session *autocomplete.Session) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintf(out, "[%s] > ", session.Snapshot().Mode)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == ":q":
			return nil
		case strings.HasPrefix(line, ":mode "):
			if err := session.SetMode(strings.TrimSpace(strings.TrimPrefix(line, ":mode "))); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				break
			}
			if snap := session.Snapshot(); snap.State != autocomplete.StateIdle {
				results, err := settle(session, snap)
				if err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
				} else {
					printCandidates(out, results)
				}
			}
		case line != "":
			results, err := searchOnce(session, line)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			} else {
				printCandidates(out, results)
			}
		}
		fmt.Fprintf(out, "[%s] > ", session.Snapshot().Mode)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func printCandidates(w io.Writer, results []model.FoodCandidate) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results")
		return
	}
	fmt.Fprintln(w, "#\tID\tNAME\tBRAND\tKCAL/100G\tP\tC\tF\tFIBER")
	for i, c := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n", i+1, c.ExternalID, c.Name, c.Brand,
			c.Per100g.Calories, c.Per100g.ProteinG, c.Per100g.CarbsG, c.Per100g.FatG, c.Per100g.FiberG)
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchMode, "mode", string(model.ItemModeGeneric), "Search mode: generic|off")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output JSON")
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "Read queries from stdin")
	searchCmd.Flags().IntVar(&searchLimit, "limit", autocomplete.DefaultMaxResults, "Maximum results to show")
	searchCmd.Flags().BoolVar(&searchClearCache, "clear-cache", false, "Remove cached provider responses")
	searchCmd.Flags().BoolVar(&searchExpiredOnly, "expired-only", false, "With --clear-cache, remove only expired responses")

	rootCmd.PersistentFlags().StringVar(&usdaBaseURL, "usda-url", "", "USDA FoodData Central base URL")
	rootCmd.PersistentFlags().StringVar(&offBaseURL, "off-url", "", "Open Food Facts base URL")
	_ = rootCmd.PersistentFlags().MarkHidden("usda-url")
	_ = rootCmd.PersistentFlags().MarkHidden("off-url")
}
