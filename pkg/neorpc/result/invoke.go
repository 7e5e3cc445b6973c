package result

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/neo-txkit/pkg/vm/stackitem"
)

// HaltState is the VM state of a successful invocation.
const HaltState = "HALT"

// Invoke represents a code invocation result and is used by several RPC calls
// that invoke functions, scripts and generic bytecode.
type Invoke struct {
	State          string
	GasConsumed    int64
	Script         []byte
	Stack          []stackitem.Item
	FaultException string
}

type invokeAux struct {
	State          string          `json:"state"`
	GasConsumed    int64           `json:"gasconsumed,string"`
	Script         string          `json:"script"`
	Stack          json.RawMessage `json:"stack"`
	FaultException *string         `json:"exception,omitempty"`
}

// MarshalJSON implements the json.Marshaler.
func (r Invoke) MarshalJSON() ([]byte, error) {
	arr := make([]json.RawMessage, len(r.Stack))
	for i := range arr {
		data, err := stackitem.ToJSONWithTypes(r.Stack[i])
		if err != nil {
			return nil, fmt.Errorf("stack item %d: %w", i, err)
		}
		arr[i] = data
	}
	st, err := json.Marshal(arr)
	if err != nil {
		return nil, err
	}
	aux := &invokeAux{
		GasConsumed: r.GasConsumed,
		Script:      hex.EncodeToString(r.Script),
		State:       r.State,
		Stack:       st,
	}
	if len(r.FaultException) != 0 {
		aux.FaultException = &r.FaultException
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements the json.Unmarshaler.
func (r *Invoke) UnmarshalJSON(data []byte) error {
	var err error
	aux := new(invokeAux)
	if err = json.Unmarshal(data, aux); err != nil {
		return err
	}
	var arr []json.RawMessage
	if len(aux.Stack) != 0 {
		if err = json.Unmarshal(aux.Stack, &arr); err != nil {
			return fmt.Errorf("failed to unmarshal stack: %w", err)
		}
	}
	st := make([]stackitem.Item, len(arr))
	for i := range arr {
		st[i], err = stackitem.FromJSONWithTypes(arr[i])
		if err != nil {
			return fmt.Errorf("failed to unmarshal stack: %w", err)
		}
	}
	script, err := hex.DecodeString(aux.Script)
	if err != nil {
		return fmt.Errorf("failed to decode script: %w", err)
	}
	r.GasConsumed = aux.GasConsumed
	r.Script = script
	r.State = aux.State
	r.Stack = st
	r.FaultException = ""
	if aux.FaultException != nil {
		r.FaultException = *aux.FaultException
	}
	return nil
}
