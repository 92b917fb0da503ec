package mockserver

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/gin-gonic/gin"
)

// Server hosts the mock backend routes.
type Server struct {
	router *gin.Engine
	addr   string
}

// New creates a mock backend server listening on addr.
func New(addr string) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router: gin.New(),
		addr:   addr,
	}
	s.router.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/plot-test", s.handlePlotTest)
	api.GET("/plot/:target", s.handlePlotTarget)
	api.GET("/lc-test", s.handleLCTest)
	api.GET("/lc/:target", s.handleLCTarget)
	api.POST("/predict", s.handlePredict)
}

// Router exposes the underlying handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Mock backend listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("mock backend failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("mock backend shutdown failed: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// curveParams extracts and bounds the shared generation parameters.
func curveParams(c *gin.Context) (windowLength int, period, depthPPM float64) {
	windowLength = exoplanet.ClampWindowLength(intQuery(c, "window_length", exoplanet.DefaultWindowLength))

	period = floatQuery(c, "period", defaultPeriod)
	if period <= 0 {
		period = defaultPeriod
	}

	depthPPM = floatQuery(c, "depth_ppm", defaultDepthPPM)
	if depthPPM < 10 {
		depthPPM = 10
	}
	if depthPPM > 20000 {
		depthPPM = 20000
	}
	return windowLength, period, depthPPM
}

func (s *Server) handlePlotTest(c *gin.Context) {
	wl, period, depth := curveParams(c)
	s.servePlot(c, wl, period, depth)
}

func (s *Server) handlePlotTarget(c *gin.Context) {
	if _, err := exoplanet.ParseMission(c.DefaultQuery("mission", string(exoplanet.MissionKepler))); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	wl, period, depth := curveParams(c)
	s.servePlot(c, wl, period, depth)
}

func (s *Server) servePlot(c *gin.Context, windowLength int, period, depthPPM float64) {
	lc := generateLightCurve(period, depthPPM, windowLength)
	data, err := renderPlotPNG(lc)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (s *Server) handleLCTest(c *gin.Context) {
	wl, period, depth := curveParams(c)
	c.JSON(http.StatusOK, generateLightCurve(period, depth, wl))
}

func (s *Server) handleLCTarget(c *gin.Context) {
	if _, err := exoplanet.ParseMission(c.DefaultQuery("mission", string(exoplanet.MissionKepler))); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	wl, period, depth := curveParams(c)
	c.JSON(http.StatusOK, generateLightCurve(period, depth, wl))
}

type predictRequest struct {
	Target    string            `json:"target"`
	Mission   exoplanet.Mission `json:"mission"`
	Author    string            `json:"author"`
	Threshold *float64          `json:"threshold"`
}

func (s *Server) handlePredict(c *gin.Context) {
	req := predictRequest{Target: "Mock-1", Mission: exoplanet.MissionKepler}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if _, err := exoplanet.ParseMission(string(req.Mission)); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	threshold := exoplanet.DefaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	diagnostics := map[string]float64{
		"snr":            18.3,
		"cdpp_ppm":       65,
		"odd_even_diff":  0.01,
		"secondary_snr":  0.2,
		"centroid_sigma": 0.7,
	}

	score := toyScore(diagnostics)

	value := func(v float64) *float64 { return &v }
	c.JSON(http.StatusOK, exoplanet.PredictionResult{
		Target:      req.Target,
		Mission:     req.Mission,
		ProbPlanet:  score,
		Threshold:   &threshold,
		Decision:    exoplanet.ComputeDecision(score, threshold),
		Diagnostics: diagnostics,
		TopFeatures: []exoplanet.TopFeature{
			{Name: "depth_ppm", Value: value(520), Impact: 0.23},
			{Name: "duration_hr", Value: value(3.1), Impact: 0.17},
			{Name: "secondary_snr", Value: value(0.2), Impact: -0.10},
			{Name: "cdpp_ppm", Value: value(65), Impact: -0.12},
		},
		Notes: []string{"Mock scoring; replace with real model later"},
	})
}

// toyScore derives a bounded probability from the diagnostic fixture: higher
// SNR helps, noise and any secondary eclipse or odd/even mismatch hurt.
func toyScore(d map[string]float64) float64 {
	score := 0.6
	score += 0.15 * (d["snr"] / 20.0)
	score -= 0.10 * (d["cdpp_ppm"] / 100.0)
	score -= 0.40 * math.Min(1.0, d["secondary_snr"])
	score -= 0.30 * math.Min(1.0, d["odd_even_diff"]*10)

	score = math.Max(0.0, math.Min(1.0, score))
	return math.Round(score*1000) / 1000
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func floatQuery(c *gin.Context, key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(c.DefaultQuery(key, strconv.FormatFloat(fallback, 'f', -1, 64)), 64)
	if err != nil {
		return fallback
	}
	return v
}
