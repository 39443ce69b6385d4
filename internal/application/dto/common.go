package dto

// Envelope estándar de la API móvil: {success, data, message} en éxito,
// {success:false, message, errors[]} en fallo de validación.

// Response respuesta de éxito con payload.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse respuesta de error. Errors lista una razón legible por
// producto ofendido (la app resalta la fila exacta del formulario).
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Pagination metadatos de página en listados.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListResponse respuesta de listado paginado.
type ListResponse struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// OK construye una respuesta de éxito.
func OK(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// Fail construye una respuesta de error.
func Fail(message string, errors ...string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message, Errors: errors}
}

// NewPagination calcula los metadatos de página.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
