// Package validator registers the workflow's custom tags with Gin's binding engine.
package validator

import (
	"sync"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Register registers all custom validators with the Gin binding engine.
// Calling it more than once is harmless.
func Register() {
	once.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("validation_action", validateAction)
			_ = v.RegisterValidation("validation_status", validateStatus)
			_ = v.RegisterValidation("transaction_type", validateTransactionType)
			_ = v.RegisterValidation("decimal_amount", validateDecimalAmount)
		}
	})
}

func validateAction(fl validator.FieldLevel) bool {
	return entity.Action(fl.Field().String()).IsValid()
}

func validateStatus(fl validator.FieldLevel) bool {
	return entity.ValidationStatus(fl.Field().String()).IsValid()
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return entity.TransactionType(fl.Field().String()).IsValid()
}

func validateDecimalAmount(fl validator.FieldLevel) bool {
	_, err := entity.ParseAmount(fl.Field().String())
	return err == nil
}
