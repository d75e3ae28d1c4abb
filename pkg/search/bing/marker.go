package bing

// Marker describes how a provider page flags its image results: anchors
// carrying Class hold a JSON object in attribute Attr, whose Field is the
// full resolution image URL.
type Marker struct {
	Class string
	Attr  string
	Field string

	// Optional fields, copied into search.Result when present.
	ThumbnailField string
	PageField      string
	TitleField     string
}

var DefaultMarker = Marker{
	Class:          "iusc",
	Attr:           "m",
	Field:          "murl",
	ThumbnailField: "turl",
	PageField:      "purl",
	TitleField:     "t",
}
