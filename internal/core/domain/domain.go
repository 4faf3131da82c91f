package domain

// Launch represents a single launch attempt from the launch records dataset.
type Launch struct {
	FlightNumber           int     // Flight sequence number, 0 when absent from the source
	LaunchSite             string  // Launch facility, one of Sites
	PayloadMassKg          float64 // Payload mass in kilograms
	Class                  int     // Outcome: ClassSuccess or ClassFailure
	BoosterVersion         string  // Booster identifier
	BoosterVersionCategory string  // Booster family, empty when absent from the source
}

// Outcome class values.
const (
	ClassFailure = 0
	ClassSuccess = 1
)

// Succeeded reports whether the launch outcome was a success.
func (l Launch) Succeeded() bool {
	return l.Class == ClassSuccess
}

// Site selector values.
const (
	// AllSites is the selector value that matches every launch site.
	AllSites      = "ALL"
	AllSitesLabel = "All Sites"
)

// Launch site names.
const (
	SiteCCAFSLC40  = "CCAFS LC-40"
	SiteCCAFSSLC40 = "CCAFS SLC-40"
	SiteKSCLC39A   = "KSC LC-39A"
	SiteVAFBSLC4E  = "VAFB SLC-4E"
)

// Sites lists the launch sites offered by the site selector, in display order.
var Sites = []string{
	SiteCCAFSLC40,
	SiteCCAFSSLC40,
	SiteKSCLC39A,
	SiteVAFBSLC4E,
}

// IsKnownSite reports whether site is a valid selector value:
// either AllSites or one of Sites.
func IsKnownSite(site string) bool {
	if site == AllSites {
		return true
	}

	for _, s := range Sites {
		if s == site {
			return true
		}
	}

	return false
}
