package api

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sanachat/internal/metrics"
	"sanachat/internal/service/chat"
)

// Handler wires the HTTP routes to the conversation service.
type Handler struct {
	svc     *chat.Service
	metrics *metrics.Metrics
}

// NewHandler constructs a Handler instance.
func NewHandler(svc *chat.Service, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, metrics: m}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/transcribe_audio", h.transcribeAudio)
	router.POST("/chat", h.chat)
	router.GET("/metrics", metricsHandler())
}

func (h *Handler) transcribeAudio(c *gin.Context) {
	language := c.PostForm("language")
	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "audio_file is required"})
		return
	}
	h.metrics.TranscriptionRequests.Inc()

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("api: open uploaded audio: %v", err)
		h.metrics.TranscriptionFailures.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Speech transcription failed"})
		return
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil {
		log.Printf("api: read uploaded audio: %v", err)
		h.metrics.TranscriptionFailures.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Speech transcription failed"})
		return
	}

	transcript, err := h.svc.Transcribe(c.Request.Context(), audio, language)
	if err != nil {
		log.Printf("api: transcription failed: %v", err)
		h.metrics.TranscriptionFailures.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Speech transcription failed"})
		return
	}

	if transcript == "" {
		c.JSON(http.StatusOK, gin.H{"transcript": "", "message": "No speech recognized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcript": transcript})
}

func (h *Handler) chat(c *gin.Context) {
	message := c.PostForm("message")
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "message is required"})
		return
	}
	language := c.PostForm("language")

	reply, audio, err := h.svc.Chat(c.Request.Context(), message, language)
	if err != nil {
		log.Printf("api: chat turn failed: %v", err)
		h.metrics.CompletionFailures.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
		return
	}

	h.metrics.ChatTurns.Inc()
	if !audio.Available {
		h.metrics.SynthesisFailures.Inc()
	}
	c.JSON(http.StatusOK, gin.H{
		"reply":        reply,
		"audio_base64": audio.AudioBase64,
	})
}
