package controllers

import (
	"net/http"
	"uniscope/authentication"
	"uniscope/environment"

	"github.com/gin-gonic/gin"
)

// GetUserUnits returns the unit codes the current user has enrolled
func GetUserUnits(c *gin.Context) {

	userID, err := authentication.Authenticate(c.Request)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	units, err := environment.Env.UserModel.GetUserUnits(userID)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// wrap response into an object
	res := struct {
		EnrolledUnits []string `json:"enrolledUnits"`
	}{units}

	c.JSON(http.StatusOK, res)
}

// AddUserUnit puts one unit on the current user's list
// adding a code that is already there is a no-op, not an error
func AddUserUnit(c *gin.Context) {

	var apiError ErrorResponse

	userID, err := authentication.Authenticate(c.Request)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	// anonymous struct used to receive input (POST BODY)
	data := struct {
		UnitCode string `json:"unitCode" binding:"required"`
	}{}

	// use 'shouldBind' so we can send customized messages
	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	err = environment.Env.UserModel.AddUserUnit(userID, data.UnitCode)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.Status(http.StatusOK)
}

// RemoveUserUnit takes one unit off the current user's list
// removing a code that is not on the list is a no-op, not an error
func RemoveUserUnit(c *gin.Context) {

	userID, err := authentication.Authenticate(c.Request)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	// muss nicht auf null geprüft werden, denn ohne Parameter ist es eine andere Route
	var code = c.Param("code")

	err = environment.Env.UserModel.RemoveUserUnit(userID, code)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.Status(http.StatusOK)
}
