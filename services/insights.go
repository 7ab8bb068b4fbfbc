package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"rentai/models"
	"rentai/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(listings []models.Listing) *models.CatalogReport {
	report := &models.CatalogReport{
		ListingsByType:     make(map[string]int),
		ListingsByLocation: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	var priced []*models.Listing
	bySize := make([]*models.Listing, 0, len(listings))

	for i := range listings {
		l := &listings[i]
		if l.IsPremium {
			report.PremiumListings++
		}
		if l.IsNew {
			report.NewListings++
		}
		if l.Price > 0 {
			priced = append(priced, l)
		}
		if l.Type != "" {
			report.ListingsByType[l.Type]++
		}
		if l.Location != "" {
			report.ListingsByLocation[l.Location]++
		}
		bySize = append(bySize, l)
	}

	// Price stats only consider listings with a price.
	if len(priced) > 0 {
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		report.MostExpensive = priced[0]
		var total int64
		for _, l := range priced {
			total += l.Price
			if l.Price < report.MinPrice {
				report.MinPrice = l.Price
			}
			if l.Price > report.MaxPrice {
				report.MaxPrice = l.Price
				report.MostExpensive = l
			}
		}
		report.AveragePrice = round2(float64(total) / float64(len(priced)))
	}

	sort.SliceStable(bySize, func(i, j int) bool {
		return bySize[i].Sqft > bySize[j].Sqft
	})
	if len(bySize) > 3 {
		bySize = bySize[:3]
	}
	report.Largest = bySize

	s.logger.Debug("[insights] Generated report over %d listings", report.TotalListings)
	return report
}

func (s *InsightService) Print(w io.Writer, r *models.CatalogReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  CATALOG INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Available properties : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Fprintf(w, "  Premium listings     : \033[1m%d\033[0m\n", r.PremiumListings)
	fmt.Fprintf(w, "  New listings         : \033[1m%d\033[0m\n", r.NewListings)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Price Statistics (per year)\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Fprintf(w, "  Average price : \033[1;32m₦%s\033[0m\n", FormatAmount(int64(r.AveragePrice)))
		fmt.Fprintf(w, "  Minimum price : \033[1;32m%s\033[0m\n", FormatNaira(r.MinPrice))
		fmt.Fprintf(w, "  Maximum price : \033[1;32m%s\033[0m\n", FormatNaira(r.MaxPrice))
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	if r.MostExpensive != nil {
		fmt.Fprintf(w, "\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  %s\n", truncate(r.MostExpensive.Title, 50))
		fmt.Fprintf(w, "  Location : %s\n", r.MostExpensive.Location)
		fmt.Fprintf(w, "  Price    : \033[1;31m%s\033[0m\n", FormatNaira(r.MostExpensive.Price))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Largest Homes\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.Largest) == 0 {
		fmt.Fprintf(w, "  No listings found\n")
	} else {
		for i, l := range r.Largest {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%d sqft\033[0m\n",
				i+1, truncate(l.Title, 38), l.Sqft)
		}
	}
	fmt.Fprintln(w)

	printCounts(w, "Listings by Type", r.ListingsByType, thin)
	printCounts(w, "Listings by Location", r.ListingsByLocation, thin)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func printCounts(w io.Writer, title string, counts map[string]int, thin string) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(counts) == 0 {
		fmt.Fprintf(w, "  No data\n")
		return
	}

	type keyCount struct {
		key   string
		count int
	}
	rows := make([]keyCount, 0, len(counts))
	for k, c := range counts {
		rows = append(rows, keyCount{k, c})
	}
	// Descending by count, then by name so output is stable.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].key < rows[j].key
	})
	for _, r := range rows {
		bar := strings.Repeat("█", r.count)
		fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(r.key, 28), bar, r.count)
	}
	fmt.Fprintln(w)
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
