package handler

import (
	"errors"
	"net/http"
	"reflect"

	"stockbook/internal/apierror"
	"stockbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps the engine's error kinds to HTTP statuses. Every error
// keeps its machine-readable code so the UI can branch without string
// matching.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrExportNotFound):
		c.JSON(http.StatusNotFound, apierror.WithCode(apierror.CodeNotFound, err.Error()))
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusConflict, apierror.WithCode(apierror.CodeInsufficientStock, err.Error()))
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, apierror.WithCode(apierror.CodeValidation, err.Error()))
	case errors.Is(err, service.ErrPersistence):
		c.JSON(http.StatusInternalServerError, apierror.WithCode(apierror.CodePersistence, err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid credentials"))
	default:
		_ = c.Error(err)
	}
}
