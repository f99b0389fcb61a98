package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/websocket"

	"github.com/TheCodingCrusade/learning-companion/internal/config"
	"github.com/TheCodingCrusade/learning-companion/internal/logger"
	"github.com/TheCodingCrusade/learning-companion/internal/summary"
	"github.com/TheCodingCrusade/learning-companion/internal/transcribe"
)

const maxUploadBytes = 2 << 30 // 2 GiB

// TranscriptionRunner starts one transcription job and reports through sink.
type TranscriptionRunner interface {
	Run(ctx context.Context, videoPath string, sink transcribe.Sink)
}

// Summarizer produces the summary document artifact.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, slidesPath, baseName string) (summary.Result, error)
}

type Server struct {
	cfg        *config.Config
	pipeline   TranscriptionRunner
	summarizer Summarizer
	logger     logger.Logger
	upgrader   websocket.Upgrader
}

func New(cfg *config.Config, pipeline TranscriptionRunner, summarizer Summarizer, log logger.Logger) *Server {
	return &Server{
		cfg:        cfg,
		pipeline:   pipeline,
		summarizer: summarizer,
		logger:     log,
		upgrader: websocket.Upgrader{
			// Origin policy is handled by the deployment front; accept all.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/summarise", s.handleSummarise)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// handleUpload stages a multipart video upload into the uploads directory
// and returns the server-local path the client passes back over the socket.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeJSONError(w, http.StatusBadRequest, "No selected file")
		return
	}

	path, err := s.stageUpload(file, filepath.Ext(header.Filename))
	if err != nil {
		s.logger.Error(ctx, "Failed to stage upload: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	s.logger.Info(ctx, "Staged upload %s -> %s", header.Filename, path)
	writeJSON(w, http.StatusOK, map[string]string{"video_path": path})
}

func (s *Server) stageUpload(src io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(s.cfg.Paths.Uploads, 0755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.cfg.Paths.Uploads, "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write staging file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close staging file: %w", err)
	}

	return tmp.Name(), nil
}

type wsCommand struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type startCommand struct {
	VideoPath string `json:"video_path"`
}

// handleWS upgrades the connection and listens for start commands. Each
// start launches a background job whose notifications flow back over this
// socket; the job itself is detached from the connection's lifetime.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(ctx, "WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sink := newSocketSink(conn, s.logger)

	for {
		var cmd wsCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			s.logger.Debug(ctx, "WebSocket closed: %v", err)
			return
		}

		switch cmd.Event {
		case "start_transcription":
			var start startCommand
			if err := json.Unmarshal(cmd.Data, &start); err != nil || start.VideoPath == "" {
				sink.Error("File not found on server.")
				continue
			}
			s.logger.Info(ctx, "Starting transcription for: %s", start.VideoPath)
			// Detached context: the job runs to completion even if the
			// client disconnects mid-way.
			go s.pipeline.Run(context.Background(), start.VideoPath, sink)
		default:
			s.logger.Warn(ctx, "Unknown websocket event: %q", cmd.Event)
		}
	}
}

// handleSummarise takes a transcript, a slides PDF upload, and an optional
// display filename, and responds with the rendered document.
func (s *Server) handleSummarise(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	transcript := r.FormValue("transcript")
	if transcript == "" {
		writeJSONError(w, http.StatusBadRequest, "No transcript provided")
		return
	}

	file, header, err := r.FormFile("slides")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "No slides file part")
		return
	}
	defer file.Close()

	slidesPath, err := s.stageUpload(file, ".pdf")
	if err != nil {
		s.logger.Error(ctx, "Failed to stage slides: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to store slides")
		return
	}

	baseName := r.FormValue("filename")
	if baseName == "" {
		baseName = header.Filename
	}

	result, err := s.summarizer.Summarize(ctx, transcript, slidesPath, baseName)
	if err != nil {
		s.logger.Error(ctx, "Summary job failed: %v", err)
		switch {
		case errors.Is(err, summary.ErrDocumentRead):
			writeJSONError(w, http.StatusBadRequest, "The slide deck could not be read.")
		case errors.Is(err, summary.ErrGeneration):
			writeJSONError(w, http.StatusBadGateway, "Summary generation failed.")
		default:
			writeJSONError(w, http.StatusInternalServerError, "Failed to produce the summary document.")
		}
		return
	}
	defer os.Remove(result.DocumentPath)

	doc, err := os.Open(result.DocumentPath)
	if err != nil {
		s.logger.Error(ctx, "Failed to open summary document: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to produce the summary document.")
		return
	}
	defer doc.Close()

	w.Header().Set("Content-Type", summary.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	if _, err := io.Copy(w, doc); err != nil {
		s.logger.Warn(ctx, "Failed to send summary document: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
