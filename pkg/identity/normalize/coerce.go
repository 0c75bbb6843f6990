package normalize

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Coerce renders any scalar as a string. nil and nil pointers become "".
// Values whose String method panics also become "".
func Coerce(raw any) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()

	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return Coerce(rv.Elem().Interface())
	}
	return fmt.Sprint(raw)
}
