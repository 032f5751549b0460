package logs

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType discriminates the value stored in a Field. Sinks that do not
// handle a type natively fall back to Field.String.
type FieldType int

const (
	// InvalidType marks a Field built as a bare struct literal. No value
	// getter may be called on it; sinks stringify or drop it.
	InvalidType FieldType = iota

	IntType
	Int64Type
	StringType
	BoolType
	DurationType
	TimeType
	StringsType
	ErrorType
	// AnyType holds an arbitrary value, rendered through fmt.
	AnyType
	StringerType

	EndType
)

func (ft FieldType) String() string {
	switch ft {
	case IntType:
		return "int"
	case Int64Type:
		return "int64"
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	case DurationType:
		return "time.Duration"
	case TimeType:
		return "time.Time"
	case StringsType:
		return "[]string"
	case ErrorType:
		return "error"
	case AnyType:
		return "any"
	case StringerType:
		return "stringer"
	case EndType:
		return "endtype"
	default:
		return "invalid"
	}
}

// Field is one typed span tag or record property. Always build fields
// through the constructors below; a sink reads the value by switching on
// Type and calling the matching getter. Calling a getter against the wrong
// type panics.
type Field struct {
	kind FieldType
	key  string

	num   int64
	str   string
	iface interface{}
}

func (f Field) Type() FieldType { return f.kind }

func (f Field) Key() string { return f.key }

func (f Field) mustBe(want FieldType) {
	if f.kind != want {
		panic(fmt.Sprintf("logs: %s getter on %s field %q", want, f.kind, f.key))
	}
}

func (f Field) StringValue() string {
	f.mustBe(StringType)

	return f.str
}

func (f Field) IntValue() int {
	f.mustBe(IntType)

	return int(f.num)
}

func (f Field) Int64Value() int64 {
	f.mustBe(Int64Type)

	return f.num
}

func (f Field) BoolValue() bool {
	f.mustBe(BoolType)

	return f.num != 0
}

func (f Field) DurationValue() time.Duration {
	f.mustBe(DurationType)

	return time.Duration(f.num)
}

func (f Field) TimeValue() time.Time {
	f.mustBe(TimeType)
	t, _ := f.iface.(time.Time)

	return t
}

func (f Field) StringsValue() []string {
	f.mustBe(StringsType)
	ss, _ := f.iface.([]string)

	return ss
}

func (f Field) ErrorValue() error {
	f.mustBe(ErrorType)
	err, _ := f.iface.(error)

	return err
}

func (f Field) AnyValue() interface{} {
	f.mustBe(AnyType)

	return f.iface
}

func (f Field) StringerValue() fmt.Stringer {
	f.mustBe(StringerType)
	s, _ := f.iface.(fmt.Stringer)

	return s
}

// String renders the value for sinks without native support for f.Type.
func (f Field) String() string {
	switch f.kind {
	case IntType, Int64Type:
		return strconv.FormatInt(f.num, 10)
	case StringType:
		return f.str
	case BoolType:
		return strconv.FormatBool(f.num != 0)
	case DurationType:
		return time.Duration(f.num).String()
	case TimeType:
		return f.TimeValue().Format(time.RFC3339Nano)
	case StringsType:
		return fmt.Sprintf("%v", f.StringsValue())
	case ErrorType:
		return fmt.Sprintf("%v", f.ErrorValue())
	case AnyType:
		return fmt.Sprint(f.iface)
	case StringerType:
		return f.StringerValue().String()
	default:
		panic(fmt.Sprintf("logs: String on %s field %q", f.kind, f.key))
	}
}

func String(key, value string) Field {
	return Field{kind: StringType, key: key, str: value}
}

func Int(key string, value int) Field {
	return Field{kind: IntType, key: key, num: int64(value)}
}

func Int64(key string, value int64) Field {
	return Field{kind: Int64Type, key: key, num: value}
}

func Bool(key string, value bool) Field {
	var num int64
	if value {
		num = 1
	}

	return Field{kind: BoolType, key: key, num: num}
}

func Duration(key string, value time.Duration) Field {
	return Field{kind: DurationType, key: key, num: value.Nanoseconds()}
}

func Time(key string, value time.Time) Field {
	return Field{kind: TimeType, key: key, iface: value}
}

func Strings(key string, value []string) Field {
	return Field{kind: StringsType, key: key, iface: value}
}

func NamedError(key string, value error) Field {
	return Field{kind: ErrorType, key: key, iface: value}
}

// Error is shorthand for NamedError("error", value).
func Error(value error) Field {
	return NamedError("error", value)
}

func Any(key string, value interface{}) Field {
	return Field{kind: AnyType, key: key, iface: value}
}

// Stringer degrades to Any when value is nil, so sinks never call String
// on a nil interface.
func Stringer(key string, value fmt.Stringer) Field {
	if value == nil {
		return Any(key, nil)
	}

	return Field{kind: StringerType, key: key, iface: value}
}
