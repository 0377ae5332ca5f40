package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/busboarding/internal/domain"
	"github.com/Domenick1991/busboarding/internal/format"
	"github.com/Domenick1991/busboarding/internal/repository"
	"github.com/Domenick1991/busboarding/internal/sequencer"
	"github.com/Domenick1991/busboarding/internal/service/boarding"
	"github.com/Domenick1991/busboarding/internal/telemetry"
	"github.com/gin-gonic/gin"
)

const exportFilename = "boarding_sequence.txt"

type BoardingHandler struct {
	service        boarding.BoardingUseCase
	maxUploadBytes int64
}

type detailResponse struct {
	Sequence             int      `json:"sequence"`
	BookingID            any      `json:"booking_id"`
	Seats                []string `json:"seats"`
	FurthestSeatDistance int      `json:"furthest_seat_distance"`
}

type generateResponse struct {
	Success       bool             `json:"success"`
	RunID         string           `json:"run_id"`
	Sequence      [][2]any         `json:"sequence"`
	Details       []detailResponse `json:"details"`
	TotalBookings int              `json:"total_bookings"`
}

func NewBoardingHandler(service boarding.BoardingUseCase, maxUploadBytes int64) *BoardingHandler {
	return &BoardingHandler{service: service, maxUploadBytes: maxUploadBytes}
}

func (h *BoardingHandler) Register(router *gin.RouterGroup) {
	router.POST("/generate", h.generate)
	router.POST("/export", h.export)
	router.GET("/sequences/:id", h.get)
}

// generate accepts either a multipart upload in field "file" or a JSON body
// with manual_data entries.
func (h *BoardingHandler) generate(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	records, err := h.readRecords(c)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errUploadTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	run, err := h.service.Generate(c.Request.Context(), records)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toGenerateResponse(run))
}

func (h *BoardingHandler) export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seq := make([]domain.BoardingEntry, 0, len(req.Sequence))
	for i, pair := range req.Sequence {
		n, err := strconv.Atoi(string(pair[0]))
		if err != nil || n <= 0 || strings.TrimSpace(string(pair[1])) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid sequence entry %d", i+1)})
			return
		}
		seq = append(seq, domain.BoardingEntry{Sequence: n, BookingID: string(pair[1])})
	}

	var buf bytes.Buffer
	if err := format.WriteSequence(&buf, seq); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (h *BoardingHandler) get(c *gin.Context) {
	run, err := h.service.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toGenerateResponse(run))
}

var (
	errNoData         = errors.New("no data provided, upload a file or send manual_data")
	errUploadTooLarge = errors.New("request body exceeds the upload limit")
)

func (h *BoardingHandler) readRecords(c *gin.Context) ([]domain.RawRecord, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fh, err := c.FormFile("file")
		if err != nil {
			if isBodyTooLarge(err) {
				return nil, errUploadTooLarge
			}
			return nil, errNoData
		}
		if fh.Filename == "" {
			return nil, errNoData
		}
		if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
			return nil, errUploadTooLarge
		}
		kind, err := format.KindFromFilename(fh.Filename)
		if err != nil {
			return nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		return format.Decode(f, kind)
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		switch {
		case isBodyTooLarge(err):
			return nil, errUploadTooLarge
		case errors.Is(err, io.EOF):
			return nil, errNoData
		}
		return nil, err
	}
	if req.ManualData == nil {
		return nil, errNoData
	}
	records := make([]domain.RawRecord, 0, len(*req.ManualData))
	for _, e := range *req.ManualData {
		records = append(records, domain.RawRecord{ID: string(e.BookingID), Seats: e.Seats})
	}
	return records, nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func (h *BoardingHandler) fail(c *gin.Context, err error) {
	switch {
	case sequencer.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		telemetry.FromContext(c.Request.Context()).Error("boarding request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func toGenerateResponse(run *domain.BoardingRun) generateResponse {
	resp := generateResponse{
		Success:       true,
		RunID:         run.ID,
		Sequence:      make([][2]any, 0, len(run.Sequence)),
		Details:       make([]detailResponse, 0, len(run.Details)),
		TotalBookings: run.TotalBookings,
	}
	for _, e := range run.Sequence {
		resp.Sequence = append(resp.Sequence, [2]any{e.Sequence, jsonID(e.BookingID)})
	}
	for _, d := range run.Details {
		resp.Details = append(resp.Details, detailResponse{
			Sequence:             d.Sequence,
			BookingID:            jsonID(d.BookingID),
			Seats:                d.Seats,
			FurthestSeatDistance: d.FurthestSeatDistance,
		})
	}
	return resp
}
