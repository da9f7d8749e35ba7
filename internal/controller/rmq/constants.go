package rmq

const (
	traceName = "rmq"

	exchangeKind       = "topic"
	exchangeDurable    = true
	exchangeAutoDelete = false
	exchangeInternal   = false
	exchangeNoWait     = false

	queueDurable    = true
	queueAutoDelete = false
	queueExclusive  = false
	queueNoWait     = false

	publishMandatory = false
	publishImmediate = false

	auditQueue      = "arithma_history_audit"
	auditBindingKey = "history.#"
	routingPrefix   = "history."
	contentType     = "application/json"
)
