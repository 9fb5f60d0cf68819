package rpc

// RpcError represents an RPC error with code and message
type RpcError struct {
	Code        int    `json:"error_code"`
	ErrorString string `json:"error"`
	Message     string `json:"error_message,omitempty"`
}

func (e RpcError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ErrorString
}

// Error codes
const (
	// Universal errors
	RpcJSON_RPC         = -32600
	RpcMETHOD_NOT_FOUND = -32601
	RpcINVALID_PARAMS   = -32602
	RpcINTERNAL         = -32603
	RpcPARSE_ERROR      = -32700

	// General purpose errors
	RpcMISSING_COMMAND = 2
	RpcTIMEOUT         = 8
	RpcNOT_ENABLED     = 31

	// Request errors
	RpcACT_MALFORMED    = 50
	RpcPUBLIC_MALFORMED = 62
	RpcBAD_SIGNATURE    = 63
	RpcTXN_MALFORMED    = 64
)

// NewRpcError creates an RpcError
func NewRpcError(code int, errorString, message string) *RpcError {
	return &RpcError{
		Code:        code,
		ErrorString: errorString,
		Message:     message,
	}
}

func RpcErrorInvalidParams(message string) *RpcError {
	return NewRpcError(RpcINVALID_PARAMS, "invalidParams", message)
}

func RpcErrorMethodNotFound(method string) *RpcError {
	return NewRpcError(RpcMETHOD_NOT_FOUND, "unknownCmd", "Unknown method: "+method)
}

func RpcErrorInternal(message string) *RpcError {
	return NewRpcError(RpcINTERNAL, "internal", message)
}

// RpcErrorTimeout reports a read that ran past the request timeout
func RpcErrorTimeout() *RpcError {
	return NewRpcError(RpcTIMEOUT, "timeout", "Request timed out.")
}

func RpcErrorNotEnabled(feature string) *RpcError {
	return NewRpcError(RpcNOT_ENABLED, "notEnabled", "Feature not enabled: "+feature)
}

// RpcErrorMissingField returns an error for a missing required field
func RpcErrorMissingField(field string) *RpcError {
	return RpcErrorInvalidParams("Missing field '" + field + "'.")
}

// RpcErrorActMalformed returns an error for an account that does not parse
func RpcErrorActMalformed(field string) *RpcError {
	return NewRpcError(RpcACT_MALFORMED, "actMalformed", "Account malformed in field '"+field+"'.")
}

func RpcErrorPublicMalformed() *RpcError {
	return NewRpcError(RpcPUBLIC_MALFORMED, "publicMalformed", "Public key is malformed.")
}

func RpcErrorBadSignature() *RpcError {
	return NewRpcError(RpcBAD_SIGNATURE, "badSignature", "Signature does not verify.")
}

func RpcErrorTxnMalformed(message string) *RpcError {
	return NewRpcError(RpcTXN_MALFORMED, "txnMalformed", message)
}
