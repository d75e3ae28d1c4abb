package searx

// Instances mirrors the subset of https://searx.space/data/instances.json
// used to pick a public instance.
type Instances struct {
	Metadata  Metadata            `json:"metadata"`
	Instances map[string]Instance `json:"instances"`
}

type Metadata struct {
	Timestamp int `json:"timestamp"`
}

type Instance struct {
	NetworkType string            `json:"network_type"`
	HTTP        HTTP              `json:"http"`
	Version     string            `json:"version"`
	Timing      Timing            `json:"timing"`
	Engines     map[string]Engine `json:"engines"`
}

type HTTP struct {
	StatusCode int    `json:"status_code"`
	Grade      string `json:"grade"`
}

type Stats struct {
	Median float64 `json:"median"`
	Stdev  float64 `json:"stdev"`
	Mean   float64 `json:"mean"`
}

type Search struct {
	SuccessPercentage float64 `json:"success_percentage"`
	All               Stats   `json:"all"`
}

type Timing struct {
	Search Search `json:"search"`
}

type Engine struct {
	ErrorRate int `json:"error_rate"`
}
