package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 與 gin 的 ShouldBind 使用相同的 binding tag
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return v
}

// Struct 檢查 binding tag；失敗時回傳可直接顯示的訊息
func Struct(obj any) error {
	if err := validate.Struct(obj); err != nil {
		return errors.New(ValidationErrorMessage(obj, err))
	}
	return nil
}

// 輸出格式化的 validator error（欄位 json 名/型別/規則列表）
func ValidationErrorMessage(obj any, err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var b strings.Builder
		b.WriteString("Validation error:\n")
		for _, fe := range errs {
			field := jsonFieldName(obj, fe.StructField())
			ftype := fieldType(obj, fe.StructField())
			format := getFieldFormat(obj, fe.StructField())
			b.WriteString(fmt.Sprintf(" - Field \"%s\" (type: %s) failed the '%s' validation (rules: %v)\n",
				field, ftype, fe.Tag(), format))
		}
		return b.String()
	}
	return fmt.Sprintf("Validation error: %s", err.Error())
}

func structType(obj any) reflect.Type {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func jsonFieldName(obj any, structField string) string {
	if f, ok := structType(obj).FieldByName(structField); ok {
		tag := f.Tag.Get("json")
		if tag != "" && tag != "-" {
			return strings.Split(tag, ",")[0]
		}
	}
	return structField
}

func fieldType(obj any, structField string) string {
	if f, ok := structType(obj).FieldByName(structField); ok {
		return f.Type.Name()
	}
	return ""
}

func getFieldFormat(obj any, structField string) []string {
	if f, ok := structType(obj).FieldByName(structField); ok {
		tag := f.Tag.Get("binding")
		if tag != "" {
			return strings.Split(tag, ",")
		}
	}
	return nil
}
