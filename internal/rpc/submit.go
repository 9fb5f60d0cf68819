package rpc

import (
	"encoding/hex"
	"errors"

	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/identity"
	jsoniter "github.com/json-iterator/go"
)

// SubmitParams are the parameters of the submit method. Signature is a DER
// ECDSA signature over sha256 of the exact Tx bytes.
type SubmitParams struct {
	Tx        jsoniter.RawMessage `json:"tx"`
	PublicKey string              `json:"public_key"`
	Signature string              `json:"signature"`
}

// SignSubmit builds submit parameters for txJSON signed by kp
func SignSubmit(kp *identity.KeyPair, txJSON []byte) SubmitParams {
	return SubmitParams{
		Tx:        jsoniter.RawMessage(txJSON),
		PublicKey: hex.EncodeToString(kp.PublicKey()),
		Signature: hex.EncodeToString(kp.Sign(txJSON)),
	}
}

// SubmitResult is returned by submit for every transaction that reached the engine
type SubmitResult struct {
	Account             identity.AccountID `json:"account"`
	TransactionType     string             `json:"transaction_type"`
	EngineResult        string             `json:"engine_result"`
	EngineResultCode    int                `json:"engine_result_code"`
	EngineResultMessage string             `json:"engine_result_message"`
	Applied             bool               `json:"applied"`
	EventType           string             `json:"event_type,omitempty"`
	Event               tx.Event           `json:"event,omitempty"`
}

type submitMethod struct {
	services *Services
}

func (m *submitMethod) Handle(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError) {
	var request SubmitParams
	if err := json.Unmarshal(params, &request); err != nil {
		return nil, RpcErrorInvalidParams("Invalid parameters: " + err.Error())
	}
	if len(request.Tx) == 0 {
		return nil, RpcErrorMissingField("tx")
	}
	if request.PublicKey == "" {
		return nil, RpcErrorMissingField("public_key")
	}
	if request.Signature == "" {
		return nil, RpcErrorMissingField("signature")
	}

	publicKey, err := hex.DecodeString(request.PublicKey)
	if err != nil {
		return nil, RpcErrorPublicMalformed()
	}
	signature, err := hex.DecodeString(request.Signature)
	if err != nil {
		return nil, RpcErrorBadSignature()
	}

	caller, err := identity.Verify(publicKey, request.Tx, signature)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidPublicKey) {
			return nil, RpcErrorPublicMalformed()
		}
		return nil, RpcErrorBadSignature()
	}

	txn, err := tx.FromJSON(request.Tx)
	if err != nil {
		return nil, RpcErrorTxnMalformed(err.Error())
	}

	res := m.services.Engine.Apply(caller, txn)
	result := SubmitResult{
		Account:             caller,
		TransactionType:     txn.TxType().String(),
		EngineResult:        res.Result.String(),
		EngineResultCode:    int(res.Result),
		EngineResultMessage: res.Message,
		Applied:             res.Applied,
	}
	if res.Event != nil {
		result.EventType = res.Event.EventType()
		result.Event = res.Event
	}
	return result, nil
}
