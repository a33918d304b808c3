package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/algebrix/algebrix/internal/engine"
	"github.com/algebrix/algebrix/internal/equation"
)

type loginRequest struct {
	Name string `json:"name" binding:"required"`
}

type quizRequest struct {
	// Answers maps question id to the selected option index.
	Answers map[int]int `json:"answers"`
}

type answerRequest struct {
	// Answer is a single-field submission.
	Answer string `json:"answer"`
	// Fields is a multi-field submission, in step label order.
	Fields []string `json:"fields"`
}

func (r answerRequest) payload() engine.Payload {
	if len(r.Fields) > 0 {
		return engine.Payload{Fields: r.Fields}
	}
	return engine.Answer(r.Answer)
}

func (s *Server) health(c *gin.Context) {
	success(c, gin.H{"status": "ok", "explain": s.svc.ExplainEnabled()})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name is required")
		return
	}
	info, err := s.svc.Login(c.Request.Context(), req.Name)
	if err != nil {
		s.failErr(c, err)
		return
	}
	c.Header(SessionHeader, info.ID)
	success(c, info)
}

func (s *Server) quizQuestions(c *gin.Context) {
	success(c, gin.H{"questions": s.svc.Questions()})
}

func (s *Server) quizSubmit(c *gin.Context) {
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid quiz answers")
		return
	}
	res, err := s.svc.ScoreQuiz(c.Request.Context(), c.GetString(sessionKey), req.Answers)
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, res)
}

// kindParam parses :kind, writing 404 for unknown kinds.
func kindParam(c *gin.Context) (equation.Kind, bool) {
	kind, err := equation.ParseKind(c.Param("kind"))
	if err != nil {
		fail(c, http.StatusNotFound, err.Error())
		return "", false
	}
	return kind, true
}

// indexParam parses the zero-based :id.
func indexParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "equation id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) equations(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	list, err := s.svc.Equations(c.GetString(sessionKey), kind)
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, gin.H{"equations": list})
}

func (s *Server) openEquation(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}
	opened, err := s.svc.OpenEquation(c.Request.Context(), c.GetString(sessionKey), kind, index)
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, opened)
}

func (s *Server) checkAnswer(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid answer body")
		return
	}
	out, err := s.svc.Submit(c.Request.Context(), c.GetString(sessionKey), kind, req.payload())
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, out)
}

func (s *Server) hint(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	h, err := s.svc.RequestHint(c.Request.Context(), c.GetString(sessionKey), kind)
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, h)
}

func (s *Server) explain(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	exp, err := s.svc.Explain(c.Request.Context(), c.GetString(sessionKey), kind)
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, exp)
}

func (s *Server) graphData(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}
	g, err := s.svc.Graph(kind, index)
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, g)
}

func (s *Server) progressData(c *gin.Context) {
	rep, err := s.svc.Report(c.GetString(sessionKey))
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, rep)
}

func (s *Server) progressKind(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	sum, err := s.svc.GetProgress(c.GetString(sessionKey), kind)
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, sum)
}
