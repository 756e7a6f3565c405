package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/arturpietrzak/customer-service-llm/internal/api/middleware"
	"github.com/arturpietrzak/customer-service-llm/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.GET("/runs").
			To(handler.ListRuns).
			Doc("List benchmark runs, newest first").
			Metadata(restfulspec.KeyOpenAPITags, []string{"runs"}).
			Writes([]models.RunRecord{}).
			Returns(200, "OK", []models.RunRecord{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/runs/{run_id}").
			To(handler.GetRun).
			Doc("Get a full benchmark run with all records").
			Metadata(restfulspec.KeyOpenAPITags, []string{"runs"}).
			Param(ws.PathParameter("run_id", "Run identifier (e.g. 20260823_120000)").DataType("string")).
			Writes(models.RunRecord{}).
			Returns(200, "OK", models.RunRecord{}).
			Returns(404, "Run Not Found", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/runs/{run_id}/records/{model_id}/{scenario_id}").
			To(handler.GetRecord).
			Doc("Get one evaluation record with transcript and verdicts").
			Metadata(restfulspec.KeyOpenAPITags, []string{"records"}).
			Param(ws.PathParameter("run_id", "Run identifier").DataType("string")).
			Param(ws.PathParameter("model_id", "Model under test").DataType("string")).
			Param(ws.PathParameter("scenario_id", "Scenario identifier").DataType("string")).
			Writes(models.EvaluationRecord{}).
			Returns(200, "OK", models.EvaluationRecord{}).
			Returns(404, "Record Not Found", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
