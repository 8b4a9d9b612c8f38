package tmdb

// ---- TMDB wire types (decoded defensively; missing fields stay zero) ----

// SearchResponse is the /search/movie response.
type SearchResponse struct {
	Page         int           `json:"page"`
	Results      []SearchMovie `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// SearchMovie is one movie from search results.
type SearchMovie struct {
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

// MovieDetails is the /movie/{id} response with credits, videos and similar
// appended via append_to_response.
type MovieDetails struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Runtime  int     `json:"runtime"`
	Status   string  `json:"status"`
	Tagline  string  `json:"tagline"`
	Genres   []Genre `json:"genres"`
	Credits  Credits `json:"credits"`
	Videos   Videos  `json:"videos"`
	Similar  Similar `json:"similar"`
	Overview string  `json:"overview"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
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

type Videos struct {
	Results []Video `json:"results"`
}

type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type Similar struct {
	Results []SearchMovie `json:"results"`
}

// ProvidersResponse is the /movie/{id}/watch/providers response, keyed by
// region code.
type ProvidersResponse struct {
	ID      int                        `json:"id"`
	Results map[string]RegionProviders `json:"results"`
}

type RegionProviders struct {
	Link     string           `json:"link"`
	Flatrate []ProviderOption `json:"flatrate"`
	Rent     []ProviderOption `json:"rent"`
	Buy      []ProviderOption `json:"buy"`
}

type ProviderOption struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}
