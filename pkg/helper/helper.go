package helper

import (
	"runtime"
)

// GetFuncName reports the fully qualified name of the calling function,
// used to tag log entries with their origin.
func GetFuncName() string {
	pc, _, _, _ := runtime.Caller(1)
	return runtime.FuncForPC(pc).Name()
}
