package commands

import (
	"fmt"
	"log/slog"
	"time"

	"juscraper/lib/courts"
	"juscraper/lib/pipeline"
	"juscraper/lib/restyutil"
	"juscraper/lib/scrape"
	"juscraper/lib/transport"
	"juscraper/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchFlags struct {
	court     *string
	text      *string
	summary   *string
	process   *string
	classes   *[]string
	subjects  *[]string
	units     *[]string
	dateStart *string
	dateEnd   *string
	pageStart *int
	pageEnd   *int
	baseDir   *string
	delayMs   *int
	keep      *bool
}

func init() {
	f := searchCmd.Flags()
	searchFlags.court = f.String("court", "", "Which court portal to search, e.g. tjsp-cjsg.")
	searchFlags.text = f.String("text", "", "Free-text search query.")
	searchFlags.summary = f.String("summary", "", "Search within decision summaries only.")
	searchFlags.process = f.String("process", "", "A process identifier, punctuated or not.")
	searchFlags.classes = f.StringSlice("class", nil, "Procedural class filter.")
	searchFlags.subjects = f.StringSlice("subject", nil, "Subject filter.")
	searchFlags.units = f.StringSlice("unit", nil, "Judging unit filter.")
	searchFlags.dateStart = f.String("date-start", "", "Lower bound on the judgment date, dd/mm/yyyy.")
	searchFlags.dateEnd = f.String("date-end", "", "Upper bound on the judgment date, dd/mm/yyyy.")
	searchFlags.pageStart = f.Int("page-start", 0, "First page to download (1-based, 0 means all pages).")
	searchFlags.pageEnd = f.Int("page-end", 0, "Last page to download.")
	searchFlags.baseDir = f.String("dir", ".dev/juscraper", "Directory page files are downloaded into.")
	searchFlags.delayMs = f.Int("delay", 500, "Minimum delay between requests, in milliseconds.")
	searchFlags.keep = f.Bool("keep", false, "Keep the downloaded page files after parsing.")

	cobra.CheckErr(searchCmd.MarkFlagRequired("court"))
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search --court <name> [--text <query>] [flags]",
	Short: "Runs a paginated search against a court portal and prints the results as a table.",
	Run: func(cmd *cobra.Command, args []string) {
		entry, err := courts.Lookup(*searchFlags.court)
		if err != nil {
			serviceutil.Fatal("unknown court", err)
		}
		profile := entry.Profile()

		var debug restyutil.InstrumentOutput
		if *verbose {
			debug = restyutil.NewFilesystemOutput(".dev/resty/juscraper")
		}
		session, err := transport.NewSession(transport.Options{
			BaseUrl: entry.BaseUrl,
			Debug:   debug,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize http session", err)
		}

		var pages *scrape.PageRange
		if *searchFlags.pageStart > 0 {
			pages = &scrape.PageRange{
				Start: *searchFlags.pageStart,
				End:   *searchFlags.pageEnd,
			}
		}

		query := scrape.Query{
			Text:      *searchFlags.text,
			Summary:   *searchFlags.summary,
			ProcessId: *searchFlags.process,
			Classes:   *searchFlags.classes,
			Subjects:  *searchFlags.subjects,
			Units:     *searchFlags.units,
			DateStart: *searchFlags.dateStart,
			DateEnd:   *searchFlags.dateEnd,
			Verbose:   *verbose,
		}

		t1 := time.Now()
		result, err := pipeline.Search(cmd.Context(), session, profile, query, pages, pipeline.Options{
			Fetcher: scrape.FetcherOptions{
				BaseDir: *searchFlags.baseDir,
				Delay:   time.Duration(*searchFlags.delayMs) * time.Millisecond,
			},
			KeepFiles: *searchFlags.keep,
			Verbose:   *verbose,
		})
		if err != nil {
			serviceutil.Fatal("search failed", err)
		}
		t2 := time.Now()

		slog.Info("search finished", "rows", result.Len(), "seconds", t2.Sub(t1).Seconds())
		renderTable(result)
	},
}

func renderTable(t *scrape.Table) {
	if t.Len() == 0 {
		fmt.Println("no results")
		return
	}
	out := newTableWriter()
	header := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	out.AppendHeader(header)

	for i := range t.Rows {
		row := make(table.Row, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = cell(t.Value(i, c))
		}
		out.AppendRow(row)
	}
	out.Render()
}

const cellLimit = 80

func cell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		if len(v) > cellLimit {
			return v[:cellLimit] + "..."
		}
		return v
	case []scrape.Record:
		return fmt.Sprintf("<%d entries>", len(v))
	default:
		return fmt.Sprint(v)
	}
}
