package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobscout/internal/aggregate"
	"jobscout/internal/config"
	"jobscout/internal/output"
	"jobscout/internal/salary"
)

var scrapeFlags struct {
	configPath string
	outPath    string

	sites            []string
	searchTerm       string
	googleSearchTerm string
	location         string
	distance         int
	remote           bool
	jobType          string
	easyApply        bool
	resultsWanted    int
	country          string
	proxies          []string
	format           string
	fullDescription  bool
	linkedinCompanies []int
	offset           int
	hoursOld         int
	enforceAnnual    bool
	verbose          int
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one search across the selected boards",
	RunE:  runScrape,
}

func init() {
	f := scrapeCmd.Flags()
	f.StringVar(&scrapeFlags.configPath, "config", "", "YAML defaults file")
	f.StringVarP(&scrapeFlags.outPath, "out", "o", "", "output file (.json, .csv, .db); stdout JSON when empty")

	f.StringSliceVar(&scrapeFlags.sites, "sites", nil, "boards to search (default: all)")
	f.StringVarP(&scrapeFlags.searchTerm, "search", "s", "", "search term")
	f.StringVar(&scrapeFlags.googleSearchTerm, "google-search", "", "verbatim query for the google board")
	f.StringVarP(&scrapeFlags.location, "location", "l", "", "location filter")
	f.IntVar(&scrapeFlags.distance, "distance", 0, "search radius in miles")
	f.BoolVar(&scrapeFlags.remote, "remote", false, "remote jobs only")
	f.StringVar(&scrapeFlags.jobType, "job-type", "", "job type filter (fulltime, parttime, ...)")
	f.BoolVar(&scrapeFlags.easyApply, "easy-apply", false, "direct-apply listings only")
	f.IntVarP(&scrapeFlags.resultsWanted, "results", "n", 0, "results per board")
	f.StringVarP(&scrapeFlags.country, "country", "c", "", "country for boards that need one")
	f.StringSliceVar(&scrapeFlags.proxies, "proxy", nil, "proxy URLs, assigned round-robin")
	f.StringVar(&scrapeFlags.format, "format", "", "description format: markdown, html or plain")
	f.BoolVar(&scrapeFlags.fullDescription, "full-description", false, "fetch each posting's detail page")
	f.IntSliceVar(&scrapeFlags.linkedinCompanies, "linkedin-company-id", nil, "restrict linkedin to these company ids")
	f.IntVar(&scrapeFlags.offset, "offset", 0, "skip this many results per board")
	f.IntVar(&scrapeFlags.hoursOld, "hours-old", 0, "only postings newer than this")
	f.BoolVar(&scrapeFlags.enforceAnnual, "annual-salary", false, "convert salary figures to yearly")
	f.CountVarP(&scrapeFlags.verbose, "verbose", "v", "log verbosity (repeatable)")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(scrapeFlags.configPath)
	if err != nil {
		return err
	}

	p := aggregate.Params{
		Sites:                scrapeFlags.sites,
		SearchTerm:           scrapeFlags.searchTerm,
		GoogleSearchTerm:     scrapeFlags.googleSearchTerm,
		Location:             scrapeFlags.location,
		Distance:             scrapeFlags.distance,
		IsRemote:             scrapeFlags.remote,
		JobType:              scrapeFlags.jobType,
		ResultsWanted:        scrapeFlags.resultsWanted,
		Country:              scrapeFlags.country,
		Proxies:              scrapeFlags.proxies,
		DescriptionFormat:    scrapeFlags.format,
		FetchFullDescription: scrapeFlags.fullDescription,
		LinkedInCompanyIDs:   scrapeFlags.linkedinCompanies,
		Offset:               scrapeFlags.offset,
		HoursOld:             scrapeFlags.hoursOld,
		EnforceAnnualSalary:  scrapeFlags.enforceAnnual,
		Verbose:              scrapeFlags.verbose,
		RateRPS:              cfg.Rate.PerHostRPS,
		RateBurst:            cfg.Rate.Burst,
		SalaryBounds: &salary.Bounds{
			LowerAnnual:      cfg.Salary.LowerAnnual,
			UpperAnnual:      cfg.Salary.UpperAnnual,
			HourlyThreshold:  cfg.Salary.HourlyThreshold,
			MonthlyThreshold: cfg.Salary.MonthlyThreshold,
		},
	}
	if cmd.Flags().Changed("easy-apply") {
		p.EasyApply = &scrapeFlags.easyApply
	}
	if p.Country == "" {
		p.Country = cfg.Defaults.Country
	}
	if p.ResultsWanted == 0 {
		p.ResultsWanted = cfg.Defaults.ResultsWanted
	}
	if p.DescriptionFormat == "" {
		p.DescriptionFormat = cfg.Defaults.DescriptionFormat
	}
	if len(p.Proxies) == 0 {
		p.Proxies = cfg.Defaults.Proxies
	}
	if p.Verbose == 0 {
		p.Verbose = cfg.Defaults.Verbose
	}

	jobs, err := aggregate.Run(cmd.Context(), p)
	if err != nil {
		return err
	}

	if scrapeFlags.outPath == "" {
		return output.WriteJSON(os.Stdout, jobs)
	}
	if err := output.Write(scrapeFlags.outPath, jobs); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d jobs to %s\n", len(jobs), scrapeFlags.outPath)
	return nil
}
