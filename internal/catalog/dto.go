package catalog

// Wire types for the gateway's JSON API. Kept separate from the model
// types so provider field naming never leaks past this package.

type loginRequest struct {
	Token string `json:"token"`
}

type loginResponse struct {
	Success bool `json:"success"`
	User    struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"user"`
}

type searchResponse struct {
	Data []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"data"`
}

type discographyResponse struct {
	Data []struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		ReleaseDate string `json:"release_date"`
		RecordType  string `json:"record_type"`
		NbTracks    int    `json:"nb_tracks"`
		CoverURL    string `json:"cover_url"`
	} `json:"data"`
}

type tracksResponse struct {
	Data []struct {
		ID       int64  `json:"id"`
		Position int    `json:"track_position"`
		Title    string `json:"title"`
		Artist   string `json:"artist"`
		Duration int    `json:"duration"`
	} `json:"data"`
}
