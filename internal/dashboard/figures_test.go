package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/launch-dashboard/internal/core/domain"
	"github.com/lueurxax/launch-dashboard/internal/dataset"
)

const (
	testSiteA = "A"
	testSiteB = "B"
)

// scenarioDataset has 3 successes and 1 failure at A, and 2 successes at B.
func scenarioDataset() *dataset.Dataset {
	return dataset.FromLaunches([]domain.Launch{
		{FlightNumber: 1, LaunchSite: testSiteA, PayloadMassKg: 100, Class: 1, BoosterVersion: "v1.0"},
		{FlightNumber: 2, LaunchSite: testSiteA, PayloadMassKg: 2500, Class: 0, BoosterVersion: "v1.1"},
		{FlightNumber: 3, LaunchSite: testSiteB, PayloadMassKg: 4000, Class: 1, BoosterVersion: "FT"},
		{FlightNumber: 4, LaunchSite: testSiteA, PayloadMassKg: 7000, Class: 1, BoosterVersion: "v1.0"},
		{FlightNumber: 5, LaunchSite: testSiteB, PayloadMassKg: 9600, Class: 1, BoosterVersion: "B4"},
		{FlightNumber: 6, LaunchSite: testSiteA, PayloadMassKg: 300, Class: 1, BoosterVersion: "FT"},
	})
}

// fixedSiteDataset uses the real launch site names.
func fixedSiteDataset() *dataset.Dataset {
	return dataset.FromLaunches([]domain.Launch{
		{FlightNumber: 1, LaunchSite: domain.SiteCCAFSLC40, PayloadMassKg: 0, Class: 0, BoosterVersion: "F9 v1.0  B0003"},
		{FlightNumber: 2, LaunchSite: domain.SiteCCAFSLC40, PayloadMassKg: 525, Class: 0, BoosterVersion: "F9 v1.0  B0005"},
		{FlightNumber: 3, LaunchSite: domain.SiteCCAFSLC40, PayloadMassKg: 677, Class: 1, BoosterVersion: "F9 v1.0  B0006"},
		{FlightNumber: 4, LaunchSite: domain.SiteVAFBSLC4E, PayloadMassKg: 500, Class: 0, BoosterVersion: "F9 v1.1  B1003"},
		{FlightNumber: 5, LaunchSite: domain.SiteKSCLC39A, PayloadMassKg: 2490, Class: 1, BoosterVersion: "F9 FT B1031.1"},
		{FlightNumber: 6, LaunchSite: domain.SiteKSCLC39A, PayloadMassKg: 5300, Class: 1, BoosterVersion: "F9 FT B1032.1"},
		{FlightNumber: 7, LaunchSite: domain.SiteCCAFSSLC40, PayloadMassKg: 3600, Class: 1, BoosterVersion: "F9 FT B1029.2"},
		{FlightNumber: 8, LaunchSite: domain.SiteVAFBSLC4E, PayloadMassKg: 9600, Class: 1, BoosterVersion: "F9 B4 B1041.1"},
		{FlightNumber: 9, LaunchSite: domain.SiteKSCLC39A, PayloadMassKg: 6070, Class: 0, BoosterVersion: "F9 FT B1032.1"},
	})
}

func TestSiteSuccesses_AllSitesScenario(t *testing.T) {
	fig := SiteSuccesses(scenarioDataset(), domain.AllSites)

	assert.Equal(t, pieTitleAllSites, fig.Title)
	assert.Equal(t, pieNamesSite, fig.Names)
	assert.Equal(t, []Slice{
		{Label: testSiteA, Count: 3},
		{Label: testSiteB, Count: 2},
	}, fig.Slices)
}

func TestSiteSuccesses_SingleSiteScenario(t *testing.T) {
	fig := SiteSuccesses(scenarioDataset(), testSiteA)

	assert.Equal(t, "Launch Success/Failure for A", fig.Title)
	assert.Equal(t, pieNamesClass, fig.Names)
	assert.Equal(t, []Slice{
		{Label: "0", Count: 1},
		{Label: "1", Count: 3},
	}, fig.Slices)
}

func TestSiteSuccesses_AllSitesCountsOnlySuccesses(t *testing.T) {
	ds := fixedSiteDataset()

	successes := 0
	for _, l := range ds.Launches() {
		if l.Succeeded() {
			successes++
		}
	}

	fig := SiteSuccesses(ds, domain.AllSites)
	assert.Equal(t, successes, fig.Total())

	// Sorted by site name; every site has at least one success in this dataset.
	labels := make([]string, 0, len(fig.Slices))
	for _, s := range fig.Slices {
		labels = append(labels, s.Label)
	}

	assert.Equal(t, []string{
		domain.SiteCCAFSLC40,
		domain.SiteCCAFSSLC40,
		domain.SiteKSCLC39A,
		domain.SiteVAFBSLC4E,
	}, labels)
}

func TestSiteSuccesses_SiteCountsSumToSiteRecords(t *testing.T) {
	ds := fixedSiteDataset()

	for _, site := range domain.Sites {
		t.Run(site, func(t *testing.T) {
			want := 0
			for _, l := range ds.Launches() {
				if l.LaunchSite == site {
					want++
				}
			}

			fig := SiteSuccesses(ds, site)
			require.Len(t, fig.Slices, 2)
			assert.Equal(t, want, fig.Total())
		})
	}
}

func TestSiteSuccesses_SiteWithoutRecords(t *testing.T) {
	fig := SiteSuccesses(scenarioDataset(), domain.SiteKSCLC39A)

	assert.Equal(t, []Slice{{Label: "0", Count: 0}, {Label: "1", Count: 0}}, fig.Slices)
	assert.Zero(t, fig.Total())
}

func TestPayloadScatter_SiteScenarioIgnoresRange(t *testing.T) {
	rng := PayloadRange{Low: 500, High: 2000}
	fig := PayloadScatter(scenarioDataset(), testSiteA, rng)

	assert.Equal(t, "Launch Success/Failure for Payload Masses at A", fig.Title)
	assert.Equal(t, rng, fig.XRange)
	assert.Equal(t, 4, fig.Len())

	// Points outside the range are still present.
	var masses []float64
	for _, s := range fig.Series {
		for _, p := range s.Points {
			masses = append(masses, p.PayloadMassKg)
		}
	}

	assert.ElementsMatch(t, []float64{100, 2500, 7000, 300}, masses)
}

func TestPayloadScatter_AllSitesReturnsEveryRecord(t *testing.T) {
	ds := fixedSiteDataset()

	ranges := []PayloadRange{
		{Low: 0, High: 10000},
		{Low: 4000, High: 5000},
		{Low: 9999, High: 9999},
	}

	for _, rng := range ranges {
		fig := PayloadScatter(ds, domain.AllSites, rng)
		assert.Equal(t, scatterTitleAllSites, fig.Title)
		assert.Equal(t, ds.Len(), fig.Len())
		assert.Equal(t, rng, fig.XRange)
	}
}

func TestPayloadScatter_SeriesByBoosterVersion(t *testing.T) {
	fig := PayloadScatter(scenarioDataset(), domain.AllSites, PayloadRange{Low: 0, High: 10000})

	names := make([]string, 0, len(fig.Series))
	for _, s := range fig.Series {
		names = append(names, s.BoosterVersion)
		assert.NotEmpty(t, s.Color)
	}

	// Ordered by first appearance in the dataset.
	assert.Equal(t, []string{"v1.0", "v1.1", "FT", "B4"}, names)

	require.Len(t, fig.Series[0].Points, 2)
	assert.Equal(t, Point{PayloadMassKg: 100, Class: 1, FlightNumber: 1}, fig.Series[0].Points[0])
	assert.Equal(t, Point{PayloadMassKg: 7000, Class: 1, FlightNumber: 4}, fig.Series[0].Points[1])

	assert.Equal(t, axisPayloadMass, fig.XAxis)
	assert.Equal(t, axisClass, fig.YAxis)
	assert.Equal(t, colorKey, fig.ColorKey)
}

func TestPayloadScatter_SiteWithoutRecords(t *testing.T) {
	fig := PayloadScatter(scenarioDataset(), domain.SiteVAFBSLC4E, PayloadRange{Low: 0, High: 1})

	assert.Zero(t, fig.Len())
	assert.NotNil(t, fig.Series)
}

func TestFigures_Idempotent(t *testing.T) {
	ds := fixedSiteDataset()
	rng := PayloadRange{Low: 1000, High: 8000}

	for _, site := range append([]string{domain.AllSites}, domain.Sites...) {
		assert.Equal(t, SiteSuccesses(ds, site), SiteSuccesses(ds, site))
		assert.Equal(t, PayloadScatter(ds, site, rng), PayloadScatter(ds, site, rng))
	}
}
