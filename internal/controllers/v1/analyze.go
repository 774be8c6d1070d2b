package v1

import (
	"net/http"
	"time"

	"github.com/credence-finance/backend/internal/httputil"
	"github.com/credence-finance/backend/internal/narrative"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// generator produces the narrative reports. Set via RegisterAnalysisRoutes.
var generator *narrative.Generator

// RegisterAnalysisRoutes registers the routes for the AI analysis with
// the RouterGroup that is passed.
func RegisterAnalysisRoutes(r *gin.RouterGroup, g *narrative.Generator) {
	generator = g

	r.OPTIONS("", OptionsAnalysis)
	r.POST("", CreateAnalysis)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analysis
// @Success		204
// @Router			/v1/analyze [options]
func OptionsAnalysis(c *gin.Context) {
	httputil.OptionsPost(c)
}

// AnalysisMeta describes how the narrative report was produced.
type AnalysisMeta struct {
	Provider     string `json:"provider" example:"groq"`
	Model        string `json:"model" example:"llama3-70b-8192"`
	ResponseTime int64  `json:"responseTime" example:"2154"` // Milliseconds
}

// AnalysisResponse is the programmatic analysis together with the
// generated narrative report.
type AnalysisResponse struct {
	Analysis narrative.Analysis `json:"analysis"`
	Report   narrative.Report   `json:"report"`
	Meta     AnalysisMeta       `json:"meta"`
}

// @Summary		Analyze budget vs expenses
// @Description	Analyzes the submitted income, expense and budget figures and generates a narrative financial report
// @Tags			Analysis
// @Accept			json
// @Produce		json
// @Success		200		{object}	AnalysisResponse
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		502		{object}	httpError
// @Param			input	body		narrative.AnalysisInput	true	"Financial data"
// @Security		BearerAuth
// @Router			/v1/analyze [post]
func CreateAnalysis(c *gin.Context) {
	var input narrative.AnalysisInput
	if err := httputil.BindData(c, &input); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if input.Income.IsZero() || len(input.Expenses) == 0 || len(input.Budget) == 0 {
		c.JSON(status(errAnalysisInputMissing), httpError{Error: errAnalysisInputMissing.Error()})
		return
	}

	analysis := narrative.AnalyzeBudgetVsExpenses(input)
	analysis.UserName = currentUser(c).Name

	start := time.Now()
	report, err := generator.Generate(c.Request.Context(), analysis)
	if err != nil {
		// The cause is for the logs, the caller only learns that the
		// generation failed. No fabricated fallback content.
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("report generation failed")
		c.JSON(http.StatusBadGateway, httpError{Error: "the report could not be generated, please try again later"})
		return
	}

	c.JSON(http.StatusOK, AnalysisResponse{
		Analysis: analysis,
		Report:   report,
		Meta: AnalysisMeta{
			Provider:     "groq",
			Model:        generator.Model(),
			ResponseTime: time.Since(start).Milliseconds(),
		},
	})
}
