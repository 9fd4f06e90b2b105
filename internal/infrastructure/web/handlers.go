package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/doeshing/fakenews-go/internal/application/view"
	"github.com/doeshing/fakenews-go/internal/domain"
)

const msgCycleFailed = "Something went wrong while classifying this text. Please try again."

type pageData struct {
	View      view.View
	InputRows int
	Error     string
}

type predictRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type predictResponse struct {
	Label         domain.Label `json:"label"`
	Confidence    float64      `json:"confidence"`
	Probabilities [2]float64   `json:"probabilities"`
	Result        string       `json:"result"`
	News          string       `json:"news"`
}

func (s *Server) handlePage(c *gin.Context) {
	s.renderCycle(c, nil)
}

func (s *Server) handleSubmit(c *gin.Context) {
	action := domain.ParseAction(c.PostForm("action"))
	sub := domain.SubmissionFor(c.PostForm("news_input"), action)
	s.renderCycle(c, &sub)
}

// renderCycle loads the caller's session, runs one cycle and draws the page.
func (s *Server) renderCycle(c *gin.Context, sub *domain.Submission) {
	ctx := c.Request.Context()
	log := loggerFrom(ctx, s.deps.Logger)

	state, err := s.deps.Store.GetOrInit(ctx, s.sessionID(c))
	if err != nil {
		log.Error("load session", "error", err)
		c.String(http.StatusServiceUnavailable, "session storage unavailable")
		return
	}
	s.setSessionCookie(c, state.ID)

	result, cycleErr := s.deps.Controller.Cycle(ctx, state, sub)
	if err := s.deps.Store.Set(ctx, result.State); err != nil {
		log.Error("save session", "session", result.State.ID, "error", err)
	}

	data := pageData{View: result.View, InputRows: s.deps.InputRows}
	status := http.StatusOK
	if cycleErr != nil {
		log.Error("render cycle failed", "session", state.ID, "error", cycleErr)
		data.Error = msgCycleFailed
		status = http.StatusInternalServerError
	}
	c.HTML(status, pageTemplate, data)
}

func (s *Server) handleAPIPredict(c *gin.Context) {
	ctx := c.Request.Context()
	log := loggerFrom(ctx, s.deps.Logger)

	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	text := req.Text
	if strings.TrimSpace(text) == "" && strings.TrimSpace(req.URL) != "" {
		if s.deps.Fetcher == nil {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "article fetching is not configured"})
			return
		}
		fetched, err := s.deps.Fetcher.Fetch(ctx, req.URL)
		switch {
		case errors.Is(err, domain.ErrNonPublicAddress):
			log.Warn("blocked article url", "url", req.URL, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "url must point to a public host"})
			return
		case err != nil:
			log.Warn("fetch article", "url", req.URL, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch article"})
			return
		}
		text = fetched
	}

	pred, err := s.deps.Predictor.Predict(ctx, text)
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.MsgEmptyInput})
		return
	case err != nil:
		log.Error("predict", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	c.JSON(http.StatusOK, predictResponse{
		Label:         pred.Label,
		Confidence:    pred.Confidence,
		Probabilities: pred.Probabilities,
		Result:        pred.Result(),
		News:          domain.TruncateDisplay(text, s.deps.TruncateLength),
	})
}

func (s *Server) handleAPIHistory(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := s.deps.Store.GetOrInit(ctx, s.sessionID(c))
	if err != nil {
		loggerFrom(ctx, s.deps.Logger).Error("load session", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session storage unavailable"})
		return
	}
	s.setSessionCookie(c, state.ID)
	v := view.Build(state, nil, nil)
	c.JSON(http.StatusOK, gin.H{
		"session_id": state.ID,
		"history":    v.History,
	})
}

func (s *Server) handleAPIEndSession(c *gin.Context) {
	ctx := c.Request.Context()
	if id := s.sessionID(c); id != "" {
		if err := s.deps.Store.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			loggerFrom(ctx, s.deps.Logger).Error("delete session", "session", id, "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session storage unavailable"})
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// sessionID returns the cookie's session id, or "" when absent or malformed.
func (s *Server) sessionID(c *gin.Context) string {
	raw, err := c.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(raw); err != nil {
		return ""
	}
	return raw
}

func (s *Server) setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(s.deps.SessionTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
}
