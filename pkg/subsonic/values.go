package subsonic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

var jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()

// MarshalValues encodes the fields of the struct in as query parameters.
//
// The parameter name is taken from the field's `url` tag, falling back to the
// field name. With the omitempty option, zero values are skipped. Nil pointers
// are always skipped and slices produce one value per element.
func MarshalValues(in any) (url.Values, error) {
	out := url.Values{}
	sv := reflect.ValueOf(in)
	st := sv.Type()
	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot marshal %T to url values", in)
	}
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		name, ok := field.Tag.Lookup("url")
		var omitEmpty bool
		if ok {
			nameParts := strings.Split(name, ",")
			name = nameParts[0]
			for _, part := range nameParts[1:] {
				if part == "omitempty" {
					omitEmpty = true
				}
			}
		} else {
			name = field.Name
		}
		if name == "" {
			return nil, errors.New("invalid 'url' tag")
		}

		fv := sv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if omitEmpty && fv.IsZero() {
			continue
		}

		if fv.Kind() == reflect.Slice && !fv.Type().Implements(jsonMarshalerType) {
			for j := 0; j < fv.Len(); j++ {
				v, err := marshalValue(fv.Index(j))
				if err != nil {
					return nil, err
				}
				out.Add(name, v)
			}
			continue
		}

		v, err := marshalValue(fv)
		if err != nil {
			return nil, err
		}
		out.Set(name, v)
	}
	return out, nil
}

func marshalValue(v reflect.Value) (string, error) {
	if v.Type().Implements(jsonMarshalerType) {
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return "", err
		}
		// It was a string, remove the quotes.
		if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
			var s string
			if err := json.Unmarshal(b, &s); err != nil {
				return "", err
			}
			return s, nil
		}
		return string(bytes.TrimSpace(b)), nil
	}
	if v.Kind() == reflect.String {
		return v.String(), nil
	}
	return fmt.Sprint(v.Interface()), nil
}
