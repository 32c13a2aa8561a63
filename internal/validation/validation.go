// Package validation registers the custom binding rules used by request DTOs.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/4ndreams/GPS-sub000/pkg/rut"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Register installs the `rut` and `rut_dashed` tags on gin's validator and
// makes field errors report json names. Safe to call more than once.
func Register() error {
	var err error
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
			return
		}
		err = RegisterOn(v)
	})
	return err
}

// RegisterOn installs the rules on a standalone validator.
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonTagName)

	if err := v.RegisterValidation("rut", validateRUT); err != nil {
		return err
	}
	return v.RegisterValidation("rut_dashed", validateDashedRUT)
}

// rut: any accepted form, with or without dots and dash.
func validateRUT(fl validator.FieldLevel) bool {
	return rut.IsValid(fl.Field().String())
}

// rut_dashed: same as rut but the dash before the check character is mandatory.
func validateDashedRUT(fl validator.FieldLevel) bool {
	return rut.Describe(fl.Field().String()).Valid
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
