package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lueurxax/launch-dashboard/internal/core/domain"
	"github.com/lueurxax/launch-dashboard/internal/dataset"
)

// Component identifiers. The page script and the API address controls by these ids.
const (
	SiteDropdownID   = "site-dropdown"
	PayloadSliderID  = "payload-slider"
	PieChartID       = "success-pie-chart"
	ScatterChartID   = "success-payload-scatter-chart"
	pageTitle        = "SpaceX Launch Records Dashboard"
	sitePlaceholder  = "Select a Launch Site here"
	sliderLabel      = "Payload range (Kg):"
	sliderMin        = 0
	sliderMax        = 10000
	sliderStep       = 1000
	titleColor       = "#503D36"
	titleFontSizePx  = 40
	sliderMarkFormat = "%d"
)

// Option is one entry of the site dropdown.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Dropdown declares the site selector.
type Dropdown struct {
	ID          string   `json:"id"`
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Searchable  bool     `json:"searchable"`
}

// Mark is a labelled slider tick.
type Mark struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// RangeSlider declares the payload range selector.
type RangeSlider struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Min   float64      `json:"min"`
	Max   float64      `json:"max"`
	Step  float64      `json:"step"`
	Value PayloadRange `json:"value"`
	Marks []Mark       `json:"marks"`
}

// Heading is the page title block.
type Heading struct {
	Text       string `json:"text"`
	Color      string `json:"color"`
	FontSizePx int    `json:"fontSizePx"`
}

// Layout is the static structure of the dashboard page.
type Layout struct {
	Title          Heading     `json:"title"`
	Dropdown       Dropdown    `json:"dropdown"`
	PieChartID     string      `json:"pieChartId"`
	Slider         RangeSlider `json:"slider"`
	ScatterChartID string      `json:"scatterChartId"`
}

// BuildLayout declares the dashboard page. The slider starts at the
// dataset's observed payload bounds.
func BuildLayout(ds *dataset.Dataset) Layout {
	options := make([]Option, 0, len(domain.Sites)+1)
	options = append(options, Option{Label: domain.AllSitesLabel, Value: domain.AllSites})

	for _, site := range domain.Sites {
		options = append(options, Option{Label: site, Value: site})
	}

	return Layout{
		Title: Heading{
			Text:       pageTitle,
			Color:      titleColor,
			FontSizePx: titleFontSizePx,
		},
		Dropdown: Dropdown{
			ID:          SiteDropdownID,
			Options:     options,
			Value:       domain.AllSites,
			Placeholder: sitePlaceholder,
			Searchable:  true,
		},
		PieChartID: PieChartID,
		Slider: RangeSlider{
			ID:    PayloadSliderID,
			Label: sliderLabel,
			Min:   sliderMin,
			Max:   sliderMax,
			Step:  sliderStep,
			Value: PayloadRange{Low: ds.MinPayload, High: ds.MaxPayload},
			Marks: sliderMarks(),
		},
		ScatterChartID: ScatterChartID,
	}
}

func sliderMarks() []Mark {
	p := message.NewPrinter(language.English)

	marks := make([]Mark, 0, (sliderMax-sliderMin)/sliderStep+1)
	for v := sliderMin; v <= sliderMax; v += sliderStep {
		marks = append(marks, Mark{Value: v, Label: p.Sprintf(sliderMarkFormat, v)})
	}

	return marks
}
