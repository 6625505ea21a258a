package handlers

import (
	"errors"
	"net/http"
)

type Handler func(http.ResponseWriter, *http.Request) Result

type Result struct {
	Error    error
	Code     int
	Body     interface{}
	HTML     []byte
	Location string
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func BadRequest(message string) Result {
	return Result{
		Code: http.StatusBadRequest,
		Body: ErrorResponse{message},
	}
}

func InternalError(error error, message string) Result {
	return Result{
		Error: errors.Join(errors.New(message), error),
		Code:  http.StatusInternalServerError,
	}
}

func NotFound(message string) Result {
	return Result{
		Code: http.StatusNotFound,
		Body: ErrorResponse{message},
	}
}

func Ok(body interface{}) Result {
	return Result{
		Code: http.StatusOK,
		Body: body,
	}
}

func HTML(page []byte) Result {
	return Result{
		Code: http.StatusOK,
		HTML: page,
	}
}

// SeeOther sends the browser back to location with a GET.
func SeeOther(location string) Result {
	return Result{
		Code:     http.StatusSeeOther,
		Location: location,
	}
}
