package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldUser      = "user"
	FieldCommand   = "command"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldKind      = "kind"
	FieldRow       = "row"
	FieldBackend   = "backend"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentBot      = "bot"
	ComponentTelegram = "telegram"
	ComponentSheets   = "sheets"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentHTTP     = "http"
)
