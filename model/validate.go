package model

import (
	"reflect"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks a record's validate tags.
func Validate(record any) error {
	return validatorInstance().Struct(record)
}

var dateType = reflect.TypeOf(Date{})

// DecodeHook converts draft and patch values into record field types:
// strings and times into Date.
func DecodeHook() mapstructure.DecodeHookFunc {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != dateType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return ParseDate(v)
		case Date:
			return v, nil
		case time.Time:
			return Date{Time: v}, nil
		}
		return data, nil
	}
}
