package interfaces

import "context"

//go:generate mockgen -destination=mocks/system_index.go . IndustryService

// SystemIndexRequest asks for the industry cost indices of one solar system
type SystemIndexRequest struct {
	SystemID int32 `json:"system_id"`
}

// SystemIndexResponse carries one cost index per industry activity. All
// indices are zero for systems absent from the upstream table.
type SystemIndexResponse struct {
	Manufacturing float64 `json:"manufacturing"`
	ResearchTE    float64 `json:"research_te"`
	ResearchME    float64 `json:"research_me"`
	Copying       float64 `json:"copying"`
	Invention     float64 `json:"invention"`
	Reactions     float64 `json:"reactions"`
}

// IndustryService serves system cost index lookups from the cached table
type IndustryService interface {
	SystemIndex(ctx context.Context, req SystemIndexRequest) (SystemIndexResponse, error)
}
