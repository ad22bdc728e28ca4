package services

// ContactRecord is one row of the shared record store. Project, Tags and
// Teams hold comma-joined value lists exactly as submitted; rows are appended
// and never updated or deduplicated.
type ContactRecord struct {
	UserID  string
	Email   string
	Project string
	Tags    string
	Teams   string
}

// ContactForm is one submission of the add-contact form. Emails may hold a
// comma-separated list; each accepted address becomes its own record sharing
// the same Project/Tags/Teams strings.
type ContactForm struct {
	Emails  string
	Project string
	Tags    string
	Teams   string
}

// Facet identifies one of the filterable record fields.
type Facet string

const (
	FacetProject Facet = "Project"
	FacetTag     Facet = "Tags"
	FacetTeam    Facet = "Teams"
)

// FilterSelection holds the values picked per facet. An empty slice imposes
// no constraint on that facet.
type FilterSelection struct {
	Projects []string
	Tags     []string
	Teams    []string
}
