package errors

import (
	"errors"
	"strings"

	"github.com/4ndreams/GPS-sub000/pkg/rut"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RUTErrorCode devuelve el código de error para un rut.Kind
func RUTErrorCode(kind rut.Kind) string {
	switch kind {
	case rut.KindEmpty:
		return ValidationRUTEmpty
	case rut.KindMalformed:
		return ValidationRUTMalformed
	case rut.KindMissingSeparator:
		return ValidationRUTSeparator
	default:
		return ValidationRUTInvalid
	}
}

// RespondWithRUTError responde 400 indicando el campo con el RUT rechazado
func RespondWithRUTError(c *gin.Context, field string, err error) {
	kind := rut.KindOf(err)
	RespondWithValidationError(c, RUTErrorCode(kind), map[string]string{
		field: kind.Message(),
	})
}

// RespondWithBindingError traduce los errores de binding de gin.
// Los campos con la regla `rut` usan los códigos de RUT.
func RespondWithBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		BadRequest(c, ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	code := ValidationInvalidInput
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := jsonFieldName(fe)
		switch fe.Tag() {
		case "rut":
			code = ValidationRUTInvalid
			fields[name] = rut.KindInvalidCheckDigit.Message()
		case "required":
			if strings.HasSuffix(strings.ToLower(fe.Field()), "rut") {
				code = ValidationRUTEmpty
				fields[name] = rut.KindEmpty.Message()
			} else {
				fields[name] = "Este campo es obligatorio"
			}
		case "email":
			fields[name] = "El email no es válido"
		case "min", "gte", "gt":
			fields[name] = "El valor es demasiado corto o pequeño"
		case "oneof":
			fields[name] = "El valor no es una opción permitida"
		default:
			fields[name] = "El valor no es válido"
		}
	}

	RespondWithValidationError(c, code, fields)
}

// jsonFieldName usa el nombre registrado por el validador (tag json) si existe
func jsonFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		return fe.Field()
	}
	return ns
}
