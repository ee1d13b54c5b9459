package entity

type Review struct {
	Author string `json:"author" yaml:"author"`
	Text   string `json:"text" yaml:"text"`
}

// Movie is a catalog entry; Rating is the true rating from 0.0 to 5.0.
type Movie struct {
	Title   string   `json:"title" yaml:"title"`
	Poster  string   `json:"poster" yaml:"poster"`
	Rating  float64  `json:"rating" yaml:"rating"`
	Reviews []Review `json:"reviews" yaml:"reviews"`
}
