package utils

import (
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"
)

func NowUTC() time.Time {
	return time.Now().UTC()
}

// Today returns the current UTC day as YYYY-MM-DD, the format deadline
// and date-range comparisons run on.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// CheckFileExt returns the extension (without the dot) and whether it is
// in the allowed list. Comparison is case-insensitive.
func CheckFileExt(fileName string, valid []string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return "", false
	}
	return ext[1:], slices.Contains(valid, ext[1:])
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(strings.TrimSpace(field.String()))

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(strings.TrimSpace(field.Index(j).String()))
				}
			}
		}
	}
}
