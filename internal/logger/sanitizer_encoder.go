package logger

import (
	"reflect"
	"time"

	"go.uber.org/zap/zapcore"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

const (
	hiddenValue  = "***HIDDEN***"
	skippedValue = "***SKIPPED***"
	logTag       = "log"
)

var durationType = reflect.TypeOf(time.Duration(0))

// MarshalSanitizedObject writes exported struct fields into enc. Only fields tagged
// `log:"true"` are written as is, every other field is replaced with a placeholder,
// so credentials never reach the logs.
func MarshalSanitizedObject(v interface{}, enc zapcore.ObjectEncoder) error {
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return xerrors.Errorf("cannot marshal object of kind %v, only struct type is supported", val.Kind())
	}
	return marshalStruct(val, enc)
}

func marshalStruct(val reflect.Value, enc zapcore.ObjectEncoder) error {
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Tag.Get(logTag) != "true" {
			enc.AddString(field.Name, hiddenValue)
			continue
		}
		if err := marshalValue(field.Name, val.Field(i), enc); err != nil {
			return xerrors.Errorf("cannot marshal field %v: %w", field.Name, err)
		}
	}
	return nil
}

func marshalValue(key string, val reflect.Value, enc zapcore.ObjectEncoder) error {
	if val.Type() == durationType {
		enc.AddDuration(key, time.Duration(val.Int()))
		return nil
	}

	switch val.Kind() {
	case reflect.Ptr:
		if val.IsNil() {
			enc.AddString(key, "nil")
			return nil
		}
		return marshalValue(key, val.Elem(), enc)
	case reflect.Struct:
		return enc.AddObject(key, zapcore.ObjectMarshalerFunc(func(inner zapcore.ObjectEncoder) error {
			return marshalStruct(val, inner)
		}))
	case reflect.Map:
		return enc.AddObject(key, zapcore.ObjectMarshalerFunc(func(inner zapcore.ObjectEncoder) error {
			iter := val.MapRange()
			for iter.Next() {
				mapKey := iter.Key()
				if mapKey.Kind() != reflect.String {
					return xerrors.Errorf("unsupported map key kind %v", mapKey.Kind())
				}
				if err := marshalValue(mapKey.String(), iter.Value(), inner); err != nil {
					return xerrors.Errorf("add key %v: %w", mapKey.String(), err)
				}
			}
			return nil
		}))
	case reflect.Interface:
		if val.IsNil() {
			enc.AddString(key, "nil")
			return nil
		}
		return marshalValue(key, val.Elem(), enc)
	case reflect.Bool:
		enc.AddBool(key, val.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		enc.AddInt64(key, val.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		enc.AddUint64(key, val.Uint())
	case reflect.Float32, reflect.Float64:
		enc.AddFloat64(key, val.Float())
	case reflect.String:
		enc.AddString(key, val.String())
	case reflect.Slice, reflect.Array:
		if err := enc.AddReflected(key, val.Interface()); err != nil {
			return xerrors.Errorf("add slice failed: %w", err)
		}
	default:
		enc.AddString(key, skippedValue)
	}
	return nil
}
