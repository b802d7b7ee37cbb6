package api

import "github.com/vango-go/vango"

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

func HealthGET(ctx vango.Ctx) (*vango.Response[HealthResponse], error) {
	database := "ok"
	if err := getService().Ping(ctx.Context()); err != nil {
		database = err.Error()
	}
	status := "ok"
	if database != "ok" {
		status = "degraded"
	}
	return vango.OK(HealthResponse{
		Status:   status,
		Version:  "0.2.0",
		Database: database,
	}), nil
}
