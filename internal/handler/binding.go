package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var bindMessages = map[string]string{
	"required": "field is required",
	"email":    "invalid email format",
	"min":      "value is too short",
	"max":      "value is too long",
	"gt":       "value is too small",
	"uuid":     "invalid identifier",
}

// RegisterTagNames makes validation errors report the json field name
// instead of the Go struct field name.
func RegisterTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// BindError maps a request-binding failure to a 400 with per-field messages.
func BindError(c *gin.Context, err error) {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		BadRequest(c, err.Error())
		return
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := bindMessages[e.Tag()]
		if msg == "" {
			msg = fmt.Sprintf("failed %s validation", e.Tag())
		}
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field(), msg))
	}
	BadRequest(c, strings.Join(parts, "; "))
}
