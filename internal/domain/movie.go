package domain

import "strings"

// CatalogMatch is one candidate title resolved against the movie catalog.
// Field names mirror the catalog's wire format.
type CatalogMatch struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	OriginalLanguage string  `json:"original_language"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type SimilarMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

type ProviderOption struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// RegionProviders is the availability data for one region. A nil value means
// either no providers are listed for the region or the lookup failed; the two
// are intentionally not distinguished.
type RegionProviders struct {
	Link     string           `json:"link"`
	Flatrate []ProviderOption `json:"flatrate,omitempty"`
	Rent     []ProviderOption `json:"rent,omitempty"`
	Buy      []ProviderOption `json:"buy,omitempty"`
}

// EnrichedMovie is the terminal entity returned to the caller. It is created
// once per resolved match and never mutated afterwards. A degraded record
// keeps the CatalogMatch fields and zeroes everything else.
type EnrichedMovie struct {
	CatalogMatch
	Runtime   int              `json:"runtime"`
	Genres    []Genre          `json:"genres"`
	Credits   Credits          `json:"credits"`
	Videos    []Video          `json:"videos"`
	Similar   []SimilarMovie   `json:"similar"`
	Providers *RegionProviders `json:"providers"`
	Status    string           `json:"status"`
	Tagline   string           `json:"tagline"`
}

// GenreNames joins the enriched genre names into a single display string,
// falling back to the given default when no genres were resolved.
func (m *EnrichedMovie) GenreNames(fallback string) string {
	if len(m.Genres) == 0 {
		return fallback
	}
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	if len(names) == 0 {
		return fallback
	}
	return strings.Join(names, ", ")
}
