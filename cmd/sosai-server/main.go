package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"sosai/internal/alert"
	"sosai/internal/analysis"
	"sosai/internal/chat"
	"sosai/internal/config"
	"sosai/internal/domain"
	"sosai/internal/emotion"
	"sosai/internal/llm"
	"sosai/internal/scenario"
	"sosai/internal/sentiment"
	"sosai/internal/store"
)

const greeting = "안녕하세요! 저는 SOSAI 챗봇입니다. 어떤 이야기든 편하게 나눠주세요. 🤗"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sentimentModel := sentiment.NewClient(cfg.SentimentAPIURL, cfg.SentimentModel, cfg.HuggingFaceAPIToken, cfg.ClassifierTimeout)
	fallbackModel := sentiment.NewClient(cfg.SentimentAPIURL, cfg.FallbackModel, cfg.HuggingFaceAPIToken, cfg.ClassifierTimeout)

	analyzer := emotion.NewAnalyzer(sentimentModel)
	classifier := scenario.NewClassifier(fallbackModel, logger)
	pipeline := analysis.NewService(classifier, analyzer, logger)

	llmProvider, err := llm.NewProvider(llm.Config{
		Provider:         cfg.LLMProvider,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		AnthropicBaseURL: cfg.AnthropicBaseURL,
		AnthropicAPIKey:  cfg.AnthropicAPIKey,
		Timeout:          cfg.ChatTimeout,
	})
	if err != nil {
		logger.Error("init llm provider failed", "error", err)
		os.Exit(1)
	}
	chatModel := chat.NewModel(llmProvider, cfg.ChatModel, logger)

	chatLog, err := newChatLog(ctx, cfg, logger)
	if err != nil {
		logger.Error("init chat log failed", "error", err)
		os.Exit(1)
	}
	defer chatLog.Close()

	alertHub := alert.NewHub(logger)
	defer alertHub.Close()
	var mqttPublisher *alert.MQTTPublisher
	if cfg.MQTTBrokerURL != "" {
		mqttPublisher = alert.NewMQTTPublisher(alert.MQTTConfig{
			BrokerURL:   cfg.MQTTBrokerURL,
			ClientID:    cfg.MQTTClientID,
			Username:    cfg.MQTTUsername,
			Password:    cfg.MQTTPassword,
			TopicPrefix: cfg.MQTTTopicPrefix,
		}, logger)
		if err := mqttPublisher.Start(ctx); err != nil {
			logger.Error("start mqtt alert publisher failed", "error", err)
			os.Exit(1)
		}
		logger.Info("mqtt alert channel enabled", "broker", cfg.MQTTBrokerURL)
	}
	alerts := alert.NewDispatcher(alertHub, mqttPublisher)

	srv := &server{
		pipeline: pipeline,
		analyzer: analyzer,
		chat:     chatModel,
		chatLog:  chatLog,
		alerts:   alerts,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		// Open to any origin for now; restrict before production use.
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", srv.handleRoot)
	r.Post("/api/v1/analyze", srv.handleAnalyze)
	r.Post("/api/v1/analyze/emotion", srv.handleAnalyzeEmotion)
	r.Post("/api/v1/chat", srv.handleChat)
	r.Post("/api/v1/chat/start", srv.handleChatStart)
	r.Get("/api/v1/chat/{chatID}/history", srv.handleChatHistory)
	r.Get("/ws/alerts", alertHub.HandleWS)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("sosai server started", "addr", cfg.HTTPAddr(), "llm_provider", cfg.LLMProvider)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func newChatLog(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.ChatLog, error) {
	if cfg.ChatDBDSN == "" {
		logger.Info("no CHAT_DB_DSN configured, using in-memory chat log")
		return store.NewMemory(), nil
	}
	pg, err := store.NewPostgres(ctx, cfg.ChatDBDSN)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, err
	}
	logger.Info("chat log backed by postgres")
	return pg, nil
}

type server struct {
	pipeline *analysis.Service
	analyzer *emotion.Analyzer
	chat     *chat.Model
	chatLog  store.ChatLog
	alerts   *alert.Dispatcher
	logger   *slog.Logger
}

type analyzeRequest struct {
	Text    string `json:"text"`
	Message string `json:"message"`
}

type analyzeResponse struct {
	Scenario  string `json:"scenario"`
	RiskLevel string `json:"riskLevel"`
	Response  string `json:"response"`
}

type emotionAnalyzeRequest struct {
	Message     string            `json:"message"`
	ChatHistory []domain.ChatTurn `json:"chatHistory"`
}

type emotionAnalyzeResponse struct {
	EmotionScore domain.EmotionScores `json:"emotionScore"`
	RiskLevel    domain.RiskLevel     `json:"riskLevel"`
	Response     string               `json:"response"`
}

type chatRequest struct {
	ChatID      string            `json:"chatId"`
	Message     string            `json:"message"`
	ChatHistory []domain.ChatTurn `json:"chatHistory"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type chatStartResponse struct {
	ChatID       string `json:"chatId"`
	AnonymousID  string `json:"anonymousId"`
	SessionToken string `json:"sessionToken"`
	Message      string `json:"message"`
	RiskLevel    string `json:"riskLevel"`
}

func (s *server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"message": "SOSAI AI 서비스 API 서버가 실행 중입니다.",
	})
}

// handleAnalyze is the primary analyze variant: scenario name plus the
// collapsed high/low risk label.
func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		text = strings.TrimSpace(req.Message)
	}
	if text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	res, err := s.pipeline.Analyze(r.Context(), text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if res.Risk == domain.RiskHigh {
		s.alerts.Notify(domain.ExpertAlert{
			Message:      res.Response,
			EmotionScore: &res.Scores,
			RiskLevel:    res.Risk,
		})
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Scenario:  res.Scenario,
		RiskLevel: res.CoarseRisk,
		Response:  "",
	})
}

// handleAnalyzeEmotion is the emotion-score variant used by the chat
// front-end: raw scores, three-level risk, and the supportive reply.
func (s *server) handleAnalyzeEmotion(w http.ResponseWriter, r *http.Request) {
	var req emotionAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	scores, err := s.analyzer.Score(r.Context(), req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	risk := emotion.EvaluateRisk(req.Message, scores)
	response := emotion.GenerateResponse(req.Message, risk, scores)

	if risk == domain.RiskHigh {
		s.alerts.Notify(domain.ExpertAlert{
			Message:      response,
			EmotionScore: &scores,
			RiskLevel:    risk,
		})
	}

	writeJSON(w, http.StatusOK, emotionAnalyzeResponse{
		EmotionScore: scores,
		RiskLevel:    risk,
		Response:     response,
	})
}

func (s *server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply := s.chat.Reply(r.Context(), req.Message, req.ChatHistory)

	if req.ChatID != "" {
		now := time.Now()
		if err := s.chatLog.AppendMessage(r.Context(), req.ChatID, store.Message{
			Role: "user", Content: req.Message, Timestamp: now,
		}); err != nil {
			s.logger.Warn("persist user message failed", "chat_id", req.ChatID, "error", err)
		} else if err := s.chatLog.AppendMessage(r.Context(), req.ChatID, store.Message{
			Role: "assistant", Content: reply, Timestamp: now,
		}); err != nil {
			s.logger.Warn("persist assistant message failed", "chat_id", req.ChatID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}

func (s *server) handleChatStart(w http.ResponseWriter, r *http.Request) {
	session, err := s.chatLog.StartChat(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatStartResponse{
		ChatID:       session.ChatID,
		AnonymousID:  session.AnonymousID,
		SessionToken: session.SessionToken,
		Message:      greeting,
		RiskLevel:    "low",
	})
}

func (s *server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	msgs, err := s.chatLog.History(r.Context(), chatID)
	if err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			writeError(w, http.StatusNotFound, "채팅을 찾을 수 없습니다.")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, msgs)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
