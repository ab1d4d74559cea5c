package logging

import "time"

// Common field constructors
func String(key, value string) Field          { return Field{Key: key, Value: value} }
func Int(key string, value int) Field         { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field       { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field helpers
func Component(name string) Field  { return String("component", name) }
func Operation(op string) Field    { return String("operation", op) }
func PersonID(id string) Field     { return String("person_id", id) }
func Department(d string) Field    { return String("department", d) }
func Scope(s string) Field         { return String("scope", s) }
func Count(n int) Field            { return Int("count", n) }
func Latency(d time.Duration) Field { return Duration("latency", d) }
