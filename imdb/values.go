package imdb

// Nil-safe wrappers for the optional nested objects GraphQL responses
// are full of. Decoding into pointers and reading through these
// accessors keeps the per-field defaults in one place instead of
// scattering nil checks through every normalizer.

type textValue struct {
	Text string `json:"text"`
}

func (v *textValue) text() string {
	if v == nil {
		return ""
	}
	return v.Text
}

type plainTextValue struct {
	PlainText string `json:"plainText"`
}

func (v *plainTextValue) text() string {
	if v == nil {
		return ""
	}
	return v.PlainText
}

type idTextValue struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type idValue struct {
	ID string `json:"id"`
}

func (v *idValue) id() string {
	if v == nil {
		return ""
	}
	return v.ID
}

type imageValue struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (v *imageValue) image() Image {
	if v == nil {
		return Image{}
	}
	return Image{URL: v.URL, Width: v.Width, Height: v.Height}
}

type dateComponents struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (d *dateComponents) date() Date {
	if d == nil {
		return Date{}
	}
	return decomposeDate(d.Day, d.Month, d.Year)
}

// nameRef is the common projection of a referenced name.
type nameRef struct {
	ID           string      `json:"id"`
	NameText     *textValue  `json:"nameText"`
	PrimaryImage *imageValue `json:"primaryImage"`
}

func (r *nameRef) refID() string {
	if r == nil {
		return ""
	}
	return trimRefID(r.ID)
}

func (r *nameRef) name() string {
	if r == nil {
		return ""
	}
	return r.NameText.text()
}

func (r *nameRef) image() Image {
	if r == nil {
		return Image{}
	}
	return r.PrimaryImage.image()
}

// titleRef is the common projection of a referenced title.
type titleRef struct {
	ID          string     `json:"id"`
	TitleText   *textValue `json:"titleText"`
	ReleaseYear *struct {
		Year int `json:"year"`
	} `json:"releaseYear"`
	TitleType    *idValue    `json:"titleType"`
	PrimaryImage *imageValue `json:"primaryImage"`
}

func (r *titleRef) refID() string {
	if r == nil {
		return ""
	}
	return trimRefID(r.ID)
}

func (r *titleRef) title() string {
	if r == nil {
		return ""
	}
	return r.TitleText.text()
}

func (r *titleRef) year() int {
	if r == nil || r.ReleaseYear == nil {
		return 0
	}
	return r.ReleaseYear.Year
}

func (r *titleRef) kind() string {
	if r == nil {
		return ""
	}
	return r.TitleType.id()
}

func (r *titleRef) image() Image {
	if r == nil {
		return Image{}
	}
	return r.PrimaryImage.image()
}
