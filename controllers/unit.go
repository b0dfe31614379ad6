package controllers

import (
	"fmt"
	"net/http"
	"time"
	"uniscope/apperror"
	"uniscope/authentication"
	"uniscope/environment"

	"github.com/gin-gonic/gin"
)

// ListUnits returns the unit catalog (read-only, seeded externally)
func ListUnits(c *gin.Context) {

	units, err := environment.Env.UnitModel.ListUnits()
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

	c.JSON(http.StatusOK, units)
}

// GetUnit returns one catalog entry
func GetUnit(c *gin.Context) {

	// muss nicht auf null geprüft werden, denn ohne Parameter ist es eine andere Route
	var code = c.Param("code")

	data, err := environment.Env.UnitModel.GetUnitByCode(code)
	if err != nil {
		switch err {
		case apperror.ErrNoData:
			c.Status(http.StatusNoContent)
		default:
			status, apiError := HandleError(err)
			c.JSON(status, apiError)
		}
		return
	}

	// track the visit ("hot units")
	// error maybe ignored here - the page is public, userID is optional
	userID, _ := authentication.Authenticate(c.Request)
	environment.Env.Tracker.SaveVisit(data.Code, c.ClientIP(), userID)

	c.JSON(http.StatusOK, data)
}

// GetUnitVisits returns the number of page visits of a unit
// format => http://localhost:3000/units/FIT2004/visits?startDT=2021-03-20
func GetUnitVisits(c *gin.Context) {

	var (
		err      error
		apiError ErrorResponse
	)

	code := c.Param("code")

	var startDT time.Time

	startStr := c.Query("startDT")
	if startStr == "" {
		// default: 7 days back (starting at 00:00:00)
		startDT = time.Now().AddDate(0, 0, -7)
		// https://stackoverflow.com/questions/36988681/time-time-round-to-day
		startDT = time.Date(startDT.Year(), startDT.Month(), startDT.Day(), 0, 0, 0, 0, startDT.UTC().Location())
	} else {
		// https://forum.golangbridge.org/t/convert-string-to-date-in-yyyy-mm-dd-format/6026/2
		startDT, err = time.Parse("2006-01-02", startStr) // seems magic date
		if err != nil {
			fmt.Println(err)
			apiError.Code = InvalidRequest
			apiError.Message = apiError.String(apiError.Code)
			c.JSON(http.StatusUnprocessableEntity, apiError)
			return
		}
	}

	visits, err := environment.Env.Tracker.GetVisits(code, startDT)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// wrap response into an object
	res := struct {
		Visits int64 `json:"visits"`
	}{visits}

	c.JSON(http.StatusOK, res)
}
