package controllers

import (
	"net/http"
	"uniscope/apperror"
	"uniscope/authentication"
	"uniscope/cache"
	"uniscope/environment"
	"uniscope/helpers"
	"uniscope/models"

	"github.com/gin-gonic/gin"
)

// how many entries the homepage "trending now" section shows
const recentReviewsLimit = 20

// AddReview persists a new review submission
// writes require an authenticated identity; the creation timestamp and the
// uppercased unit code are set server-side
func AddReview(c *gin.Context) {

	var (
		err      error
		data     models.Review
		apiError ErrorResponse
	)

	userID, err := authentication.Authenticate(c.Request)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	// use "shouldBind" not all fields are required in this context
	if err = c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// validate request - nothing is written when any field fails
	review, vErr := environment.Env.ReviewModel.Validate(data)
	if vErr != nil {
		res := ValidationErrorResponse{
			Code:   ValidationFailed,
			Fields: vErr.Fields,
		}
		res.Message = ErrorResponse{}.String(res.Code)
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}

	review.UserID = helpers.ObjectID(userID)

	// Create also fires the cache invalidation for the affected views
	id, err := environment.Env.ReviewModel.Create(review)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, Created{id})
}

// ListReviews returns the most recent reviews over all units
// (homepage "trending now" section)
func ListReviews(c *gin.Context) {

	var reviews []models.Review

	// serve from cache when fresh
	if environment.Env.Cache.Get(cache.KeyRecentReviews, &reviews) {
		c.JSON(http.StatusOK, reviews)
		return
	}

	reviews, err := environment.Env.ReviewModel.ListRecent(recentReviewsLimit)
	if err != nil {
		// nothing found (not an error to the client)
		if err == apperror.ErrNoData {
			c.Status(http.StatusNoContent)
			return
		}
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Cache.Set(cache.KeyRecentReviews, reviews)

	c.JSON(http.StatusOK, reviews)
}

// ListUnitReviews returns every review of one unit, newest first
func ListUnitReviews(c *gin.Context) {

	var code = c.Param("code")

	var reviews []models.Review

	if environment.Env.Cache.Get(cache.UnitKey(code), &reviews) {
		c.JSON(http.StatusOK, reviews)
		return
	}

	reviews, err := environment.Env.ReviewModel.ListByUnit(code)
	if err != nil {
		if err == apperror.ErrNoData {
			c.Status(http.StatusNoContent)
			return
		}
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Cache.Set(cache.UnitKey(code), reviews)

	c.JSON(http.StatusOK, reviews)
}

// GetUnitSummaries returns count & mean rating per unit
// the list is a pure function of the current review set - it is recomputed
// from a single full scan whenever the cached copy was invalidated
func GetUnitSummaries(c *gin.Context) {

	var summaries []models.UnitSummary

	if environment.Env.Cache.Get(cache.KeySummaries, &summaries) {
		c.JSON(http.StatusOK, summaries)
		return
	}

	reviews, err := environment.Env.ReviewModel.ListAll()
	if err != nil {
		// no reviews, no summaries (not an error to the client)
		if err == apperror.ErrNoData {
			c.Status(http.StatusNoContent)
			return
		}
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	summaries = models.Aggregate(reviews)

	environment.Env.Cache.Set(cache.KeySummaries, summaries)

	c.JSON(http.StatusOK, summaries)
}

// SummarizeReviews asks the external text-generation service for a short
// summary of the review texts the client currently displays.
// the call is on-demand (pull) - nothing is generated automatically, and
// nothing is cached; a retry is simply a fresh request
func SummarizeReviews(c *gin.Context) {

	var apiError ErrorResponse

	// anonymous struct used to receive input (POST BODY)
	data := struct {
		UnitCode string   `json:"unitCode" binding:"required"`
		Reviews  []string `json:"reviews" binding:"required"`
	}{}

	// use 'shouldBind' so we can send customized messages
	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	summary, err := environment.Env.Summarizer.Summarize(data.UnitCode, data.Reviews)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// wrap response into an object
	res := struct {
		Summary string `json:"summary"`
	}{summary}

	c.JSON(http.StatusOK, res)
}
