// Package dashboard implements the launch records dashboard: the static page
// layout, the two chart bindings, and their HTTP surface.
//
// Chart bindings are pure functions of their inputs and the read-only
// dataset:
//
//   - SiteSuccesses: site selector → success pie chart
//   - PayloadScatter: site selector + payload range → payload/outcome scatter chart
package dashboard

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/lueurxax/launch-dashboard/internal/core/domain"
	"github.com/lueurxax/launch-dashboard/internal/dataset"
)

// Chart titles and axis labels.
const (
	pieTitleAllSites     = "Launch Success/Failure for All Sites"
	pieTitleSiteFmt      = "Launch Success/Failure for %s"
	scatterTitleAllSites = "Launch Success/Failure for Payload Masses"
	scatterTitleSiteFmt  = "Launch Success/Failure for Payload Masses at %s"

	pieNamesSite  = "Launch Site"
	pieNamesClass = "class"

	axisPayloadMass = "Payload Mass (kg)"
	axisClass       = "class"
	colorKey        = "Booster Version"
)

// Slice is one pie chart sector.
type Slice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PieFigure is the chart-ready output of the site selection aggregator.
type PieFigure struct {
	Title  string  `json:"title"`
	Names  string  `json:"names"`
	Slices []Slice `json:"slices"`
}

// Total returns the sum of all slice counts.
func (f PieFigure) Total() int {
	total := 0
	for _, s := range f.Slices {
		total += s.Count
	}

	return total
}

// PayloadRange is an inclusive payload mass interval in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Point is one launch plotted on the scatter chart.
type Point struct {
	PayloadMassKg float64 `json:"x"`
	Class         int     `json:"y"`
	FlightNumber  int     `json:"flightNumber,omitempty"`
}

// ScatterSeries groups the points of a single booster version.
type ScatterSeries struct {
	BoosterVersion string  `json:"name"`
	Color          string  `json:"color"`
	Points         []Point `json:"points"`
}

// ScatterFigure is the chart-ready output of the payload filter.
type ScatterFigure struct {
	Title    string          `json:"title"`
	XAxis    string          `json:"xAxis"`
	YAxis    string          `json:"yAxis"`
	ColorKey string          `json:"colorKey"`
	XRange   PayloadRange    `json:"xRange"`
	Series   []ScatterSeries `json:"series"`
}

// Len returns the number of points across all series.
func (f ScatterFigure) Len() int {
	n := 0
	for _, s := range f.Series {
		n += len(s.Points)
	}

	return n
}

// SiteSuccesses aggregates launch outcomes for the site selector value.
//
// For AllSites it counts successful launches per site; failures are not
// shown. For a specific site it returns two slices, "0" for failures and
// "1" for successes, in that order.
func SiteSuccesses(ds *dataset.Dataset, site string) PieFigure {
	if site == domain.AllSites {
		return successesBySite(ds)
	}

	return outcomesForSite(ds, site)
}

func successesBySite(ds *dataset.Dataset) PieFigure {
	counts := make(map[string]int)

	for _, l := range ds.Launches() {
		if l.Succeeded() {
			counts[l.LaunchSite]++
		}
	}

	sites := make([]string, 0, len(counts))
	for site := range counts {
		sites = append(sites, site)
	}

	sort.Strings(sites)

	slices := make([]Slice, 0, len(sites))
	for _, site := range sites {
		slices = append(slices, Slice{Label: site, Count: counts[site]})
	}

	return PieFigure{
		Title:  pieTitleAllSites,
		Names:  pieNamesSite,
		Slices: slices,
	}
}

func outcomesForSite(ds *dataset.Dataset, site string) PieFigure {
	var failures, successes int

	for _, l := range ds.Launches() {
		if l.LaunchSite != site {
			continue
		}

		if l.Succeeded() {
			successes++
		} else {
			failures++
		}
	}

	return PieFigure{
		Title: fmt.Sprintf(pieTitleSiteFmt, site),
		Names: pieNamesClass,
		Slices: []Slice{
			{Label: strconv.Itoa(domain.ClassFailure), Count: failures},
			{Label: strconv.Itoa(domain.ClassSuccess), Count: successes},
		},
	}
}

// PayloadScatter selects the launches shown on the payload scatter chart.
//
// Rows are selected by site only. The payload range is copied to the
// figure's x-axis range and does not filter rows.
func PayloadScatter(ds *dataset.Dataset, site string, rng PayloadRange) ScatterFigure {
	title := scatterTitleAllSites
	if site != domain.AllSites {
		title = fmt.Sprintf(scatterTitleSiteFmt, site)
	}

	fig := ScatterFigure{
		Title:    title,
		XAxis:    axisPayloadMass,
		YAxis:    axisClass,
		ColorKey: colorKey,
		XRange:   rng,
		Series:   []ScatterSeries{},
	}

	seriesIdx := make(map[string]int)

	for _, l := range ds.Launches() {
		if site != domain.AllSites && l.LaunchSite != site {
			continue
		}

		i, ok := seriesIdx[l.BoosterVersion]
		if !ok {
			i = len(fig.Series)
			seriesIdx[l.BoosterVersion] = i
			fig.Series = append(fig.Series, ScatterSeries{
				BoosterVersion: l.BoosterVersion,
				Color:          seriesColorHex(i),
			})
		}

		fig.Series[i].Points = append(fig.Series[i].Points, Point{
			PayloadMassKg: l.PayloadMassKg,
			Class:         l.Class,
			FlightNumber:  l.FlightNumber,
		})
	}

	return fig
}
