package dto

// ErrorResponse — стандартный конверт ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
}
