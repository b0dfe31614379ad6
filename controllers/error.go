package controllers

import (
	"fmt"
	"net/http"
	"uniscope/authentication"
	"uniscope/models"
	"uniscope/summarize"
)

// ErrorResponse is the standardized error structure which may be returned by any API
type ErrorResponse struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
}

// ValidationErrorResponse additionally carries one message per failing field
// so forms can mark all inputs in a single round-trip
type ValidationErrorResponse struct {
	Code    int32             `json:"code"`
	Message string            `json:"msg"`
	Fields  map[string]string `json:"fields"`
}

// HandleError encodes the std ErrorResponse
// raw driver/provider errors never leave the API unmapped
func HandleError(err error) (httpStatus int, apiError ErrorResponse) {

	if err == nil {
		apiError.Code = 0
		apiError.Message = ""

		return 0, apiError
	}

	fmt.Println(err)
	switch err {
	// system
	case authentication.ErrServerConfig:
		apiError.Code = ServerConfig
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusInternalServerError
	// user
	case models.ErrEMailAddressTaken:
		apiError.Code = EMailAddressTaken
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrWeakPassword:
		apiError.Code = WeakPassword
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrInvalidUser:
		apiError.Code = InvalidRequest
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	// unit list
	case models.ErrUnitCodeInvalid:
		apiError.Code = UnitCodeInvalid
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	// summarization - all retryable by a fresh invocation
	case summarize.ErrNotEnoughReviews:
		apiError.Code = NotEnoughReviews
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	case summarize.ErrServiceUnavailable:
		apiError.Code = SummaryServiceDown
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusServiceUnavailable
	case summarize.ErrMalformedResponse:
		apiError.Code = SummaryMalformed
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusBadGateway
	default:
		apiError.Code = SystemError
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusInternalServerError
	}
	return httpStatus, apiError
}

// Application Error Codes (API Errors)
const (
	// client/api
	InvalidJSON int32 = (10000 + iota)
	InvalidRequest
	InvalidLogin
	ValidationFailed
	// user
	EMailAddressTaken
	WeakPassword
	// unit list
	UnitCodeInvalid
	// summarization
	NotEnoughReviews
	SummaryServiceDown
	SummaryMalformed
	// system
	ServerConfig
	SystemError = 99999
)

func (er ErrorResponse) String(code int32) string {
	msg := ""
	switch code {
	// common (system)
	case InvalidJSON:
		msg = "Invalid JSON"
	case InvalidRequest:
		msg = "Invalid Request" // JSON was correct, data was not
	case InvalidLogin:
		msg = "invalid email-address or password"
	case ValidationFailed:
		msg = "submission failed validation"
	// user
	case EMailAddressTaken:
		msg = "email-address is already in use"
	case WeakPassword:
		msg = "the password is too weak"
	// unit list
	case UnitCodeInvalid:
		msg = "unit code must be 3-10 characters"
	// summarization
	case NotEnoughReviews:
		msg = "not enough reviews to create a summary"
	case SummaryServiceDown:
		msg = "summary service not available - please try again"
	case SummaryMalformed:
		msg = "summary service sent an unexpected response"
	case ServerConfig:
		msg = "Server Configuration Problem"
	case SystemError:
		msg = "Server Problem"
	}

	return msg
}
