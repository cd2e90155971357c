package missionarchive

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/4oBuko/mission-archive/internal/graph"
	"github.com/4oBuko/mission-archive/internal/metrics"
	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/myerrors"
	"github.com/4oBuko/mission-archive/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

var Endpoints = struct {
	GraphQL string
	Health  string
	Metrics string

	MissionCreate  string
	MissionGet     string
	MissionGetAll  string
	MissionResults string
	MissionDelete  string
	TargetAdd      string
	TargetGetAll   string

	CountryCreate string
	CountryGet    string
	CountryGetAll string
	CountryDelete string

	CityCreate string
	CityGetAll string

	TargetTypeCreate string
	TargetTypeGetAll string
	AttackTypeCreate string
	AttackTypeGetAll string
}{
	GraphQL: "/graphql",
	Health:  "/healthz",
	Metrics: "/metrics",

	MissionCreate:  "/missions",
	MissionGet:     "/missions/:id",
	MissionGetAll:  "/missions",
	MissionResults: "/missions/:id/results",
	MissionDelete:  "/missions/:id",
	TargetAdd:      "/missions/:id/targets",
	TargetGetAll:   "/missions/:id/targets",

	CountryCreate: "/countries",
	CountryGet:    "/countries/:id",
	CountryGetAll: "/countries",
	CountryDelete: "/countries/:id",

	CityCreate: "/cities",
	CityGetAll: "/cities",

	TargetTypeCreate: "/target-types",
	TargetTypeGetAll: "/target-types",
	AttackTypeCreate: "/attack-types",
	AttackTypeGetAll: "/attack-types",
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	router           *gin.Engine
	httpServer       *http.Server
	schema           *graphql.Schema
	missionService   services.MissionService
	geographyService services.GeographyService
	health           HealthChecker
	metrics          *metrics.Metrics
	logger           *zap.Logger
}

func NewServer(addr string, missionService services.MissionService, geographyService services.GeographyService,
	health HealthChecker, logger *zap.Logger) (*Server, error) {
	schema, err := graph.NewSchema(missionService, geographyService)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	server := &Server{
		router:           router,
		httpServer:       &http.Server{Addr: addr, Handler: router},
		schema:           schema,
		missionService:   missionService,
		geographyService: geographyService,
		health:           health,
		metrics:          metrics.New(),
		logger:           logger,
	}
	router.Use(gin.Recovery(), requestID(), requestLogger(logger), server.metrics.Middleware())

	router.POST(Endpoints.GraphQL, server.handleGraphQL)
	router.GET(Endpoints.Health, server.handleHealth)
	router.GET(Endpoints.Metrics, gin.WrapH(server.metrics.Handler()))

	router.POST(Endpoints.MissionCreate, server.handleAddMission)
	router.GET(Endpoints.MissionGet, server.handleGetMission)
	router.GET(Endpoints.MissionGetAll, server.handleGetMissions)
	router.PATCH(Endpoints.MissionResults, server.handleUpdateAttackResults)
	router.DELETE(Endpoints.MissionDelete, server.handleDeleteMission)
	router.POST(Endpoints.TargetAdd, server.handleAddTarget)
	router.GET(Endpoints.TargetGetAll, server.handleGetTargets)

	router.POST(Endpoints.CountryCreate, server.handleAddCountry)
	router.GET(Endpoints.CountryGet, server.handleGetCountry)
	router.GET(Endpoints.CountryGetAll, server.handleGetAllCountries)
	router.DELETE(Endpoints.CountryDelete, server.handleDeleteCountry)

	router.POST(Endpoints.CityCreate, server.handleAddCity)
	router.GET(Endpoints.CityGetAll, server.handleGetCities)

	router.POST(Endpoints.TargetTypeCreate, server.handleAddTargetType)
	router.GET(Endpoints.TargetTypeGetAll, server.handleGetAllTargetTypes)
	router.POST(Endpoints.AttackTypeCreate, server.handleAddAttackType)
	router.GET(Endpoints.AttackTypeGetAll, server.handleGetAllAttackTypes)
	return server, nil
}

func (s *Server) handleGraphQL(ctx *gin.Context) {
	var request graph.Request
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid graphql request: " + err.Error(),
		})
		return
	}
	response := s.schema.Exec(ctx.Request.Context(), request.Query, request.OperationName, request.Variables)
	s.metrics.ObserveOperation(graph.OperationKind(request.Query, request.OperationName), len(response.Errors) > 0)
	s.hideInternalErrors(ctx, response)
	ctx.JSON(http.StatusOK, response)
}

// hideInternalErrors replaces the message of resolver errors that are not
// request errors, so storage failures reach the log and not the client.
func (s *Server) hideInternalErrors(ctx *gin.Context, response *graphql.Response) {
	requestId := ctx.GetString(requestIDKey)
	for _, queryErr := range response.Errors {
		var requestErr *myerrors.RequestError
		if queryErr.ResolverError == nil || errors.As(queryErr.ResolverError, &requestErr) {
			continue
		}
		s.logger.Error("graphql resolver failed", zap.Error(queryErr.ResolverError),
			zap.Any("path", queryErr.Path), zap.String("request_id", requestId))
		queryErr.Message = "internal error"
		queryErr.Extensions = map[string]any{"code": "INTERNAL", "request_id": requestId}
	}
}

func (s *Server) handleHealth(ctx *gin.Context) {
	if err := s.health.Ping(ctx.Request.Context()); err != nil {
		requestId := ctx.GetString(requestIDKey)
		s.logger.Warn("database ping failed", zap.Error(err), zap.String("request_id", requestId))
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "unavailable",
			"request_id": requestId,
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAddMission(ctx *gin.Context) {
	var mission models.NewMission
	if err := ctx.ShouldBindJSON(&mission); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid mission: " + err.Error(),
		})
		return
	}
	savedMission, err := s.missionService.Add(ctx.Request.Context(), mission)
	if err != nil {
		s.respondError(ctx, "attempt to add new mission failed", err)
		return
	}
	ctx.JSON(http.StatusCreated, savedMission)
}

func (s *Server) handleGetMission(ctx *gin.Context) {
	id, ok := pathId(ctx, "mission")
	if !ok {
		return
	}
	mission, err := s.missionService.GetById(ctx.Request.Context(), id)
	if err != nil {
		s.respondError(ctx, "failed to get mission by id", err)
		return
	}
	mission.Targets, err = s.missionService.GetTargets(ctx.Request.Context(), id)
	if err != nil {
		s.respondError(ctx, "failed to get mission targets", err)
		return
	}
	ctx.JSON(http.StatusOK, mission)
}

// handleGetMissions lists all missions or applies exactly one of the filters
// from, to (together), country, industry and targetType.
func (s *Server) handleGetMissions(ctx *gin.Context) {
	from, hasFrom := ctx.GetQuery("from")
	to, hasTo := ctx.GetQuery("to")
	country, hasCountry := ctx.GetQuery("country")
	industry, hasIndustry := ctx.GetQuery("industry")
	targetType, hasTargetType := ctx.GetQuery("targetType")

	filters := 0
	for _, set := range []bool{hasFrom || hasTo, hasCountry, hasIndustry, hasTargetType} {
		if set {
			filters++
		}
	}
	if filters > 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "use only one of the filters: from/to, country, industry, targetType",
		})
		return
	}

	var (
		missions []models.Mission
		err      error
	)
	switch {
	case hasFrom || hasTo:
		start, end, ok := dateRange(ctx, from, to)
		if !ok {
			return
		}
		missions, err = s.missionService.GetByDateRange(ctx.Request.Context(), start, end)
	case hasCountry:
		missions, err = s.missionService.GetByCountry(ctx.Request.Context(), country)
	case hasIndustry:
		missions, err = s.missionService.GetByTargetIndustry(ctx.Request.Context(), industry)
	case hasTargetType:
		missions, err = s.missionService.GetAttackResultsByTargetType(ctx.Request.Context(), targetType)
	default:
		missions, err = s.missionService.GetAll(ctx.Request.Context())
	}
	if err != nil {
		s.respondError(ctx, "attempt to get missions failed", err)
		return
	}
	ctx.JSON(http.StatusOK, missions)
}

func (s *Server) handleUpdateAttackResults(ctx *gin.Context) {
	id, ok := pathId(ctx, "mission")
	if !ok {
		return
	}
	var update models.AttackResultsUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	mission, err := s.missionService.UpdateAttackResults(ctx.Request.Context(), id, update)
	if err != nil {
		s.respondError(ctx, "attempt to update attack results failed", err)
		return
	}
	ctx.JSON(http.StatusOK, mission)
}

func (s *Server) handleDeleteMission(ctx *gin.Context) {
	id, ok := pathId(ctx, "mission")
	if !ok {
		return
	}
	if err := s.missionService.Delete(ctx.Request.Context(), id); err != nil {
		s.respondError(ctx, "attempt to delete mission failed", err)
		return
	}
	ctx.JSON(http.StatusOK, models.DeleteResult{Success: true})
}

func (s *Server) handleAddTarget(ctx *gin.Context) {
	missionId, ok := pathId(ctx, "mission")
	if !ok {
		return
	}
	var target models.NewTarget
	if err := ctx.ShouldBindJSON(&target); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "incorrect target format: " + err.Error(),
		})
		return
	}
	target.MissionId = missionId

	savedTarget, err := s.missionService.AddTarget(ctx.Request.Context(), target)
	if err != nil {
		s.respondError(ctx, "attempt to add target failed", err)
		return
	}
	ctx.JSON(http.StatusCreated, savedTarget)
}

func (s *Server) handleGetTargets(ctx *gin.Context) {
	missionId, ok := pathId(ctx, "mission")
	if !ok {
		return
	}
	targets, err := s.missionService.GetTargets(ctx.Request.Context(), missionId)
	if err != nil {
		s.respondError(ctx, "attempt to get targets failed", err)
		return
	}
	ctx.JSON(http.StatusOK, targets)
}

func (s *Server) handleAddCountry(ctx *gin.Context) {
	var country models.Country
	if err := ctx.ShouldBindJSON(&country); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	saved, err := s.geographyService.AddCountry(ctx.Request.Context(), country)
	if err != nil {
		s.respondError(ctx, "attempt to add new country failed", err)
		return
	}
	ctx.JSON(http.StatusCreated, saved)
}

func (s *Server) handleGetCountry(ctx *gin.Context) {
	id, ok := pathId(ctx, "country")
	if !ok {
		return
	}
	country, err := s.geographyService.GetCountryById(ctx.Request.Context(), id)
	if err != nil {
		s.respondError(ctx, "failed to get country by id", err)
		return
	}
	ctx.JSON(http.StatusOK, country)
}

func (s *Server) handleGetAllCountries(ctx *gin.Context) {
	countries, err := s.geographyService.GetAllCountries(ctx.Request.Context())
	if err != nil {
		s.respondError(ctx, "error while attempting to fetch all countries", err)
		return
	}
	ctx.JSON(http.StatusOK, countries)
}

func (s *Server) handleDeleteCountry(ctx *gin.Context) {
	id, ok := pathId(ctx, "country")
	if !ok {
		return
	}
	if err := s.geographyService.DeleteCountry(ctx.Request.Context(), id); err != nil {
		s.respondError(ctx, "attempt to delete country failed", err)
		return
	}
	ctx.JSON(http.StatusOK, models.DeleteResult{Success: true})
}

func (s *Server) handleAddCity(ctx *gin.Context) {
	var city models.City
	if err := ctx.ShouldBindJSON(&city); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	saved, err := s.geographyService.AddCity(ctx.Request.Context(), city)
	if err != nil {
		s.respondError(ctx, "attempt to add new city failed", err)
		return
	}
	ctx.JSON(http.StatusCreated, saved)
}

func (s *Server) handleGetCities(ctx *gin.Context) {
	var countryId *int64
	if raw, ok := ctx.GetQuery("countryId"); ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"message": "countryId must be a number",
			})
			return
		}
		countryId = &id
	}
	cities, err := s.geographyService.GetCities(ctx.Request.Context(), countryId)
	if err != nil {
		s.respondError(ctx, "error while attempting to fetch cities", err)
		return
	}
	ctx.JSON(http.StatusOK, cities)
}

func (s *Server) handleAddTargetType(ctx *gin.Context) {
	var targetType models.TargetType
	if err := ctx.ShouldBindJSON(&targetType); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	saved, err := s.geographyService.AddTargetType(ctx.Request.Context(), targetType)
	if err != nil {
		s.respondError(ctx, "attempt to add new target type failed", err)
		return
	}
	ctx.JSON(http.StatusCreated, saved)
}

func (s *Server) handleGetAllTargetTypes(ctx *gin.Context) {
	targetTypes, err := s.geographyService.GetAllTargetTypes(ctx.Request.Context())
	if err != nil {
		s.respondError(ctx, "error while attempting to fetch target types", err)
		return
	}
	ctx.JSON(http.StatusOK, targetTypes)
}

func (s *Server) handleAddAttackType(ctx *gin.Context) {
	var attackType models.AttackType
	if err := ctx.ShouldBindJSON(&attackType); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	saved, err := s.geographyService.AddAttackType(ctx.Request.Context(), attackType)
	if err != nil {
		s.respondError(ctx, "attempt to add new attack type failed", err)
		return
	}
	ctx.JSON(http.StatusCreated, saved)
}

func (s *Server) handleGetAllAttackTypes(ctx *gin.Context) {
	attackTypes, err := s.geographyService.GetAllAttackTypes(ctx.Request.Context())
	if err != nil {
		s.respondError(ctx, "error while attempting to fetch attack types", err)
		return
	}
	ctx.JSON(http.StatusOK, attackTypes)
}

// respondError maps request errors to their status code. Anything else is an
// internal error and gets prefixed with msg.
func (s *Server) respondError(ctx *gin.Context, msg string, err error) {
	var requestErr *myerrors.RequestError
	if !errors.As(err, &requestErr) {
		requestId := ctx.GetString(requestIDKey)
		s.logger.Error(msg, zap.Error(err), zap.String("request_id", requestId))
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message":    msg,
			"request_id": requestId,
		})
		return
	}

	status := http.StatusBadRequest
	switch requestErr.Kind {
	case myerrors.KindNotFound:
		status = http.StatusNotFound
	case myerrors.KindReferentialViolation:
		status = http.StatusUnprocessableEntity
	case myerrors.KindConflict:
		status = http.StatusConflict
	}
	ctx.JSON(status, gin.H{
		"message": requestErr.Message,
		"code":    requestErr.Kind,
	})
}

func pathId(ctx *gin.Context, entity string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"message": entity + " not found. Use number as id!",
		})
		return 0, false
	}
	return id, true
}

func dateRange(ctx *gin.Context, from, to string) (models.Date, models.Date, bool) {
	if from == "" || to == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "both from and to are required for a date range",
		})
		return models.Date{}, models.Date{}, false
	}
	start, err := models.ParseDate(from)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return models.Date{}, models.Date{}, false
	}
	end, err := models.ParseDate(to)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return models.Date{}, models.Date{}, false
	}
	return start, end, true
}

func (s *Server) Run() error {
	s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
