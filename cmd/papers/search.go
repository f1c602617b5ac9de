package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/matsen/papers/internal/storage"
	"github.com/spf13/cobra"
)

var (
	searchLimit   int
	searchAuthors []string
	searchTags    []string
	searchYear    string
	searchVenue   string
	searchRebuild bool
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().StringArrayVarP(&searchAuthors, "author", "a", nil, "Search by author name (can be repeated, uses AND logic)")
	searchCmd.Flags().StringArrayVarP(&searchTags, "tag", "t", nil, "Only papers carrying this tag (can be repeated)")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Filter by year: exact (2024), range (2020:2024), or open (2020: or :2024)")
	searchCmd.Flags().StringVar(&searchVenue, "venue", "", "Filter by venue/journal (partial match)")
	searchCmd.Flags().BoolVar(&searchRebuild, "rebuild", false, "Rebuild the search cache first")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search papers by keyword, author, tag, year or venue",
	Long: `Search papers through the SQLite search cache.

The query matches citekeys, titles, abstracts, authors and tags. Author
matching is by prefix, so "Tim" matches "Timothy". All given filters must
match.

Year syntax:
  --year 2024         - Exact year
  --year 2020:2024    - Range (inclusive)
  --year 2020:        - 2020 and later
  --year :2020        - 2020 and earlier

Examples:
  papers search phylogenetics
  papers search "deep learning" -a Smith --year 2020:
  papers search -t toread --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	yearFrom, yearTo, err := parseYearRange(searchYear)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	repo := mustOpenRepository()
	db := mustOpenCache(repo.Root())
	defer db.Close()

	count, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "reading cache: %v", err)
	}
	if searchRebuild || count != repo.Size() {
		logger.Debug("rebuilding search cache", slog.Int("cached", count), slog.Int("papers", repo.Size()))
		mustRebuildCache(repo, db)
	}

	filters := storage.SearchFilters{
		Authors:  searchAuthors,
		Tags:     searchTags,
		YearFrom: yearFrom,
		YearTo:   yearTo,
		Venue:    searchVenue,
	}
	if len(args) == 1 {
		filters.Keyword = args[0]
	}

	hits, err := db.Search(filters, searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if humanOutput {
		if len(hits) == 0 {
			fmt.Println("No papers found")
			return nil
		}
		for _, h := range hits {
			printPaperSummary(h.Number, h.Paper)
		}
	} else {
		results := make([]PaperResult, len(hits))
		for i, h := range hits {
			results[i] = PaperResult{Number: h.Number, Paper: h.Paper}
		}
		outputJSON(results)
	}
	return nil
}

// parseYearRange parses "2024", "2020:2024", "2020:" or ":2024".
// A zero bound means unbounded.
func parseYearRange(s string) (from, to int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}

	if lo, hi, ok := strings.Cut(s, ":"); ok {
		if lo != "" {
			if from, err = strconv.Atoi(lo); err != nil {
				return 0, 0, fmt.Errorf("invalid start year %q", lo)
			}
		}
		if hi != "" {
			if to, err = strconv.Atoi(hi); err != nil {
				return 0, 0, fmt.Errorf("invalid end year %q", hi)
			}
		}
		return from, to, nil
	}

	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", s)
	}
	return year, year, nil
}
