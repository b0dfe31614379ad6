package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"uniscope/authentication"
	"uniscope/environment"
	"uniscope/helpers"
	"uniscope/models"

	"github.com/gin-gonic/gin"
)

// EMailExists maybe used to validate new accounts while typing into the form
func EMailExists(c *gin.Context) {

	var apiError ErrorResponse

	// anonymous struct used to receive input (POST BODY)
	data := struct {
		EMailAddress string `json:"eMail" binding:"required"`
	}{}

	// use 'shouldBind' so we can send customized messages
	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	exists := environment.Env.UserModel.EMailAddressExists(data.EMailAddress)

	// wrap response into an object
	res := struct {
		Exists bool `json:"exists"`
	}{exists}

	c.JSON(http.StatusOK, res)
}

// Register a new account
func Register(c *gin.Context) {

	var (
		err      error
		data     models.User
		apiError ErrorResponse
	)

	// short syntax (err "zentral" deklariert)
	if err = c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// basically look for missing fields, everything else is checked by the model
	data.EMailAddress = strings.TrimSpace(data.EMailAddress)
	data.Password = strings.TrimSpace(data.Password)

	if len(data.EMailAddress) == 0 || len(data.Password) == 0 {
		apiError.Code = InvalidRequest
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// this also validates the password rules and the address uniqueness
	ID, err := environment.Env.UserModel.CreateUser(data)
	if err != nil {
		fmt.Println(err)
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, Created{ID})
}

// Login a user
func Login(c *gin.Context) {

	var (
		err       error
		givenUser models.User
		dbUser    *models.User
		apiError  ErrorResponse
	)

	// use std struct
	if err = c.ShouldBindJSON(&givenUser); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// check for required fields
	givenUser.EMailAddress = strings.TrimSpace(givenUser.EMailAddress)
	givenUser.Password = strings.TrimSpace(givenUser.Password)
	if len(givenUser.EMailAddress) == 0 || len(givenUser.Password) == 0 {
		apiError.Code = InvalidRequest
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnauthorized, apiError)
		return
	}

	// Benutzer in der DB suchen und das Profil laden
	dbUser, err = environment.Env.UserModel.GetUserByEMail(givenUser.EMailAddress)
	if err != nil {
		// user does not exist
		if err == models.ErrInvalidUser {
			// send custom error message
			apiError.Code = InvalidLogin
			apiError.Message = apiError.String(apiError.Code)
			c.JSON(http.StatusUnauthorized, apiError)
			return
		}
		// "real" error
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// übergibt das unverschlüsselte PWD vom Login und das verschlüsselte aus der DB
	granted := environment.Env.UserModel.CheckPassword(givenUser.Password, *dbUser)
	if !granted {
		// send custom error message
		apiError.Code = InvalidLogin
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnauthorized, apiError)
		return
	}

	// create, register & save pair of AT/RT
	err = authentication.CreateTokens(c, dbUser.ID.Hex())
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.UserModel.SetLastSeen(dbUser.ID)

	// passwort nicht erneut zurücksenden
	dbUser.Password = ""

	c.JSON(http.StatusOK, &dbUser)
}

// Logout löscht das Access Token in der Registry
// (kein DB-Zugriff nötig)
func Logout(c *gin.Context) {

	// Damit im Client der CurrentUser (LocalStorage) und das Cookie gelöscht
	// werden können, soll das API keinen Fehler liefern

	au, err := authentication.ExtractTokenMetadata(authentication.AT, c.Request)
	if err == nil {
		// in case of error the token might be expired
		_, _ = authentication.DeleteAuth(au.TokenUUID)
	}

	// "Hard log-out" => AT, RT & Cookie löschen => auf allen Geräten ausloggen
	au, err = authentication.ExtractTokenMetadata(authentication.RT, c.Request)
	if err == nil {
		_, _ = authentication.DeleteAuth(au.TokenUUID)
	}

	// Cookie löschen
	_ = helpers.DelCookie(c, os.Getenv("JWTCK_NAME"))

	c.Status(http.StatusOK)
}

// Refresh erzeugt ein neues AT wenn noch ein RT vorhanden ist
func Refresh(c *gin.Context) {

	var apiError ErrorResponse

	au, err := authentication.ExtractTokenMetadata(authentication.RT, c.Request)
	if err != nil {
		_, apiError = HandleError(err)
		c.JSON(http.StatusUnauthorized, apiError)
		return
	}

	// ist das RT noch gültig? (macht beim AT die Middleware)
	err = authentication.TokenValid(authentication.RT, c.Request)
	if err != nil {
		_, apiError = HandleError(err)
		c.JSON(http.StatusUnauthorized, apiError)
		return
	}

	// userID für die Ausstellung eines neuen Token Pair
	userID, err := authentication.FetchAuth(au)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	dbUser, err := environment.Env.UserModel.GetUserByID(userID)
	if err != nil {
		// user does not exist - erneute Prüfung kaum nötig, kann aber noch mehr Sicherheit geben :-)
		if err == models.ErrInvalidUser {
			status, apiError := HandleError(err)
			c.JSON(status, apiError)
			return
		}
		// "real" error
		c.Status(http.StatusInternalServerError) // make client say "please try again later"
		return
	}

	// falls zu viele RTs (Clients) für den User in Umlauf sind, alle löschen, sonst nur das aktuelle
	deleted, err := authentication.DeleteAuths(authentication.RT, userID, au.TokenUUID)
	if err != nil || deleted == 0 { // if anything goes wrong
		apiError.Code = InvalidRequest
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// create, register & save pair of AT/RT
	err = authentication.CreateTokens(c, userID)
	if err != nil {
		_, apiError = HandleError(err)
		c.JSON(http.StatusUnauthorized, apiError)
		return
	}

	environment.Env.UserModel.SetLastSeen(dbUser.ID)

	// passwort nicht erneut zurücksenden
	dbUser.Password = ""

	c.JSON(http.StatusOK, &dbUser)
}
