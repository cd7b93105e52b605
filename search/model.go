package search

// HealthStatus is the body returned by the health check endpoint.
type HealthStatus struct {
	Status      string `json:"status"`
	Uptime      string `json:"uptime"`
	Environment string `json:"environment"`
}

// FitmentLabel is one label returned by the fitment labels endpoint.
type FitmentLabel struct {
	ID       string `json:"id"`
	GroupID  string `json:"groupId"`
	Name     string `json:"name"`
	Priority string `json:"priority"`
}

// FitmentValue is one value of a fitment label.
type FitmentValue struct {
	ID       string `json:"id"`
	GroupID  string `json:"groupId"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Priority string `json:"priority"`
}
