package handler

import "datalayer/internal/datalayer/models"

// DataLayerResponse is returned by POST /v1/datalayer.
type DataLayerResponse struct {
	Snapshot models.Snapshot `json:"customDL"`
	Payload  models.Payload  `json:"payload"`
}
