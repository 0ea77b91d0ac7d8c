package handler

// RouteError tags an error with the message the route reports when the
// cause is an upstream or unexpected failure.
type RouteError struct {
	Message string
	Err     error
}

func (e *RouteError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *RouteError) Unwrap() error {
	return e.Err
}

func failed(message string, err error) error {
	if err == nil {
		return nil
	}
	return &RouteError{Message: message, Err: err}
}

// Route failure messages.
const (
	msgServerError     = "Error en el servidor"
	msgCatalogFailed   = "Error al obtener los datos de la API externa"
	msgUpdateFailed    = "Error al actualizar el artículo"
	msgContactFailed   = "Error al enviar la solicitud de contacto"
	msgCreateOrder     = "Error al crear el pedido"
	msgListOrders      = "Error al obtener los pedidos"
	msgGetOrder        = "Error al obtener el pedido"
	msgConvertFailed   = "Error en la conversión de moneda"
	msgInvalidAmount   = "Por favor proporciona una cantidad válida"
	msgContactSent     = "Solicitud de contacto enviada exitosamente"
	msgInvalidPayload  = "Solicitud inválida"
	msgPayloadTooLarge = "El cuerpo de la solicitud es demasiado grande"
)
