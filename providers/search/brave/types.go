package brave

// SearchRequest holds the query parameters forwarded to the Brave Search API.
// Query is the only required field; the zero value of every other field means
// "let the API use its default".
type SearchRequest struct {
	// Query is the search query string.
	Query string
	// Count is the number of results to request (clamped to 1..20, the
	// range the API accepts).
	Count int
	// Country is the country code for localized results (e.g. "US").
	Country string
	// SearchLang is the search language code (e.g. "en").
	SearchLang string
	// ResultFilter restricts the result sections the API computes
	// (e.g. "web"). Empty means all sections.
	ResultFilter string
}

// SearchResponse is the top-level response envelope returned by the Brave
// Search REST API, mapped directly from JSON. Sections the API did not
// return are nil.
type SearchResponse struct {
	Type  string      `json:"type"`
	Query *QueryInfo  `json:"query,omitempty"`
	Web   *WebResults `json:"web,omitempty"`
}

// QueryInfo holds metadata about the submitted search query as reported by
// the Brave API, including the original text, whether spellcheck was
// bypassed, and any automatically altered query.
type QueryInfo struct {
	Original      string `json:"original"`
	SpellcheckOff bool   `json:"spellcheck_off,omitempty"`
	AlteredQuery  string `json:"altered,omitempty"`
}

// WebResults holds the collection of organic web results returned by the API
// along with the result-set type identifier and family-friendliness flag.
type WebResults struct {
	Type           string      `json:"type"`
	Results        []WebResult `json:"results"`
	FamilyFriendly bool        `json:"family_friendly,omitempty"`
}

// WebResult holds the metadata for a single organic web result. Description
// may contain HTML highlighting markup as delivered by the API; callers that
// need plain text must sanitize it themselves.
type WebResult struct {
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	Description    string     `json:"description"`
	PageAge        string     `json:"page_age,omitempty"`
	Language       string     `json:"language,omitempty"`
	FamilyFriendly bool       `json:"family_friendly,omitempty"`
	Age            string     `json:"age,omitempty"`
	Profile        *Profile   `json:"profile,omitempty"`
	MetaURL        *MetaURL   `json:"meta_url,omitempty"`
	Thumbnail      *Thumbnail `json:"thumbnail,omitempty"`
}

// Profile holds the display name, URL, long name, and avatar image of the
// source profile associated with a web result.
type Profile struct {
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	LongName string `json:"long_name,omitempty"`
	Img      string `json:"img,omitempty"`
}

// MetaURL holds the decomposed components of a result's canonical URL as
// provided by the Brave API for display and routing purposes.
type MetaURL struct {
	Scheme   string `json:"scheme"`
	Netloc   string `json:"netloc"`
	Hostname string `json:"hostname"`
	Favicon  string `json:"favicon,omitempty"`
	Path     string `json:"path,omitempty"`
}

// Thumbnail holds the source URL and optional pixel dimensions of a preview
// image attached to a web result.
type Thumbnail struct {
	Src    string `json:"src"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}
