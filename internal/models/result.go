package models

// Result is the uniform envelope returned by every action.
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func OK(data interface{}) Result {
	return Result{Success: true, Data: data}
}

func Fail(err *AppError) Result {
	return Result{Success: false, Error: err.Message, Code: err.Code}
}
