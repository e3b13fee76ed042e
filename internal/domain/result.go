package domain

// Result is the tool-facing outcome of an operation. Failures such as a
// missing id are reported through Success rather than an error.
type Result struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
}

func Ok(id, message string) Result {
	return Result{Success: true, ID: id, Message: message}
}

func Fail(message string) Result {
	return Result{Success: false, Message: message}
}
