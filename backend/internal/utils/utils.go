package utils

import (
	"net/http"
	"unicode/utf8"

	"github.com/itchan-dev/community/shared/domain"
	"github.com/itchan-dev/community/shared/errors"
)

const (
	MaxTitleLength = 100
	MaxBodyLength  = 10_000
)

type PostValidator struct{}

func (e *PostValidator) Title(title domain.PostTitle) error {
	if len(title) == 0 {
		return &errors.ErrorWithStatusCode{Message: "Title is required", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return &errors.ErrorWithStatusCode{Message: "Title is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func (e *PostValidator) Body(body domain.PostBody) error {
	if len(body) == 0 {
		return &errors.ErrorWithStatusCode{Message: "Text is too short", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		return &errors.ErrorWithStatusCode{Message: "Text is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func New() *PostValidator {
	return &PostValidator{}
}
