package stack

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/spanlog/spanlog-go/internal/xstring"
)

type Caller interface {
	Record() string
}

var _ Caller = call{}

type call struct {
	function uintptr
	file     string
	line     int
}

func Call(depth int) (c call) {
	c.function, c.file, c.line, _ = runtime.Caller(depth + 1)

	return c
}

// Record renders the call site as `pkg.Func(file.go:123)`.
func (c call) Record() string {
	name := runtime.FuncForPC(c.function).Name()
	if i := strings.LastIndex(name, "/"); i > -1 {
		name = name[i+1:]
	}
	file := c.file
	if i := strings.LastIndex(file, "/"); i > -1 {
		file = file[i+1:]
	}

	b := xstring.Buffer()
	defer b.Free()
	b.WriteString(name)
	b.WriteByte('(')
	b.WriteString(file)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(c.line))
	b.WriteByte(')')

	return b.String()
}

func Record(depth int) string {
	return Call(depth + 1).Record()
}
