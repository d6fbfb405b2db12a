package api

import (
	"fmt"
	"reflect"
	"strings"

	"vfx-dashboard/internal/common/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names in messages
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("studiorole", func(fl validator.FieldLevel) bool {
		return contains(models.Roles, fl.Field().String())
	})
	_ = v.RegisterValidation("level", func(fl validator.FieldLevel) bool {
		return models.LevelRank(fl.Field().String()) >= 0
	})
	return v
}

// Validate checks a request DTO and returns a 400 *fiber.Error describing the
// first failing field.
func Validate(dst interface{}) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s failed on '%s'", field, fe.Tag()))
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

// Bind parses the JSON body into dst and validates it.
func Bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return Validate(dst)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
