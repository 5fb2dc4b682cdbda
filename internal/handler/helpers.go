package handler

import (
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/snc99/Pay-Wise-BE/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// listPageSize matches the fixed page size used by the paginated services.
const listPageSize = 7

var validate = validator.New()

var (
	digitRe      = regexp.MustCompile(`\d`)
	usernameRe   = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	personNameRe = regexp.MustCompile(`^[a-zA-Z .'-]+$`)
	phoneLocalRe = regexp.MustCompile(`^08\d{8,11}$`)
	phoneIntlRe  = regexp.MustCompile(`^62\d{9,12}$`)
)

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

	// Report fields by their json name so error maps match the request body.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("usernamefmt", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return usernameRe.MatchString(v) && digitRe.MatchString(v)
	})
	validate.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), " \t")
	})
	// Indonesian mobile numbers: 08xxxxxxxxxx or the 62 international form.
	validate.RegisterValidation("idphone", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return phoneLocalRe.MatchString(v) || phoneIntlRe.MatchString(v)
	})
}

// bindAndValidate binds the JSON body and runs validator tags, writing the
// field-level error envelope on failure. Returns false when the caller
// should stop without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Err(c, http.StatusBadRequest, "Format request tidak valid.")
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string][]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
		}
		response.ValidationErr(c, fields)
		return false
	}
	return true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s wajib diisi.", fe.Field())
	case "min":
		return fmt.Sprintf("%s minimal %s karakter.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s maksimal %s karakter.", fe.Field(), fe.Param())
	case "email":
		return "Format email tidak valid."
	case "gt":
		return fmt.Sprintf("%s harus lebih dari %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s.", fe.Field(), fe.Param())
	case "usernamefmt":
		return "Username hanya boleh huruf, angka, underscore, dan harus memuat angka."
	case "personname":
		return "Nama hanya boleh huruf, spasi, titik, kutip, dan strip."
	case "nospace":
		return fmt.Sprintf("%s tidak boleh mengandung spasi.", fe.Field())
	case "idphone":
		return "Format nomor telepon tidak valid."
	default:
		return fmt.Sprintf("%s tidak valid.", fe.Field())
	}
}

// pageQuery reads the ?page= parameter, defaulting to 1.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
