package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/finlens/extrato-parser/internal/analyzer"
	"github.com/finlens/extrato-parser/internal/bank"
	"github.com/finlens/extrato-parser/internal/cache"
	"github.com/finlens/extrato-parser/internal/models"
	"github.com/finlens/extrato-parser/internal/pipeline"
	"github.com/finlens/extrato-parser/internal/writer"
)

// Converter runs the extraction pipeline. Satisfied by *pipeline.Pipeline.
type Converter interface {
	Process(ctx context.Context, data []byte, bankID string) (*pipeline.Result, error)
}

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Bank         string               `json:"bank,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Report       *models.Report       `json:"report,omitempty"`
	CSV          string               `json:"csv,omitempty"`
	TotalDebit   float64              `json:"totalDebit"`
	TotalCredit  float64              `json:"totalCredit"`
	Count        int                  `json:"count"`
	Cached       bool                 `json:"cached"`
}

// Server wires the converter behind an HTTP API.
type Server struct {
	app       *fiber.App
	converter Converter
	registry  *bank.Registry
	cache     *cache.Cache
	log       *slog.Logger
}

func NewServer(converter Converter, registry *bank.Registry, resultCache *cache.Cache, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		converter: converter,
		registry:  registry,
		cache:     resultCache,
		log:       log,
	}

	s.app = fiber.New(fiber.Config{
		BodyLimit:             32 << 20,
		DisableStartupMessage: true,
	})
	s.app.Use(recover.New())
	s.app.Use(cors.New())

	s.app.Get("/api/health", s.handleHealth)
	s.app.Get("/api/banks", s.handleBanks)
	s.app.Post("/api/convert", s.handleConvert)
	return s
}

// Listen blocks serving the API on addr.
func (s *Server) Listen(addr string) error {
	s.log.Info("api listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

func (s *Server) handleBanks(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"banks": s.registry.List(),
	})
}

func (s *Server) handleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	bankID := strings.TrimSpace(c.FormValue("bank"))
	if bankID == "" {
		return writeError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Form field 'bank' is required. Available: %s.",
				strings.Join(s.registry.IDs(), ", ")))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Failed to read uploaded file.")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Failed to read uploaded file.")
	}

	noCache := c.FormValue("noCache") == "true" || c.Query("noCache") == "true"
	hash := cache.Hash(data)

	if s.cache != nil && !noCache {
		if entry, ok := s.cache.Load(hash); ok {
			s.log.Info("serving cached result", "hash", hash[:12], "bank", bankID)
			return s.respond(c, bankID, entry.Transactions, entry.Report, true)
		}
	}

	result, err := s.converter.Process(c.Context(), data, bankID)
	if err != nil {
		var unsupported *bank.UnsupportedBankError
		if errors.As(err, &unsupported) {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}
		s.log.Error("conversion failed", "error", err)
		return writeError(c, fiber.StatusUnprocessableEntity,
			fmt.Sprintf("Conversion failed: %v", err))
	}

	if s.cache != nil && !noCache && len(result.Transactions) > 0 {
		if err := s.cache.Save(hash, result.Transactions, result.Report); err != nil {
			// Cache trouble should never fail the request.
			s.log.Warn("failed to cache result", "error", err)
		}
	}

	return s.respond(c, bankID, result.Transactions, result.Report, false)
}

func (s *Server) respond(c *fiber.Ctx, bankID string, txns []models.Transaction, report models.Report, cached bool) error {
	// nil marshals to JSON null, not []
	if txns == nil {
		txns = []models.Transaction{}
	}

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{}
	if err := csvWriter.Write(&csvBuf, txns, report); err != nil {
		return writeError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("CSV generation failed: %v", err))
	}

	stats := analyzer.Stats(txns)
	return c.JSON(ConvertResponse{
		Success:      true,
		Bank:         bankID,
		Transactions: txns,
		Report:       &report,
		CSV:          csvBuf.String(),
		TotalDebit:   stats.TotalDebit.InexactFloat64(),
		TotalCredit:  stats.TotalCredit.InexactFloat64(),
		Count:        len(txns),
		Cached:       cached,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
